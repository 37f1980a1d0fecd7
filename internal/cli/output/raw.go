package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yndnr/respkv/internal/resp"
)

// RawFormatter renders replies the way redis-cli does.
type RawFormatter struct{}

// Format writes data. Replies use redis-cli notation; other values are
// printed with their String method or fmt defaults.
func (f *RawFormatter) Format(w io.Writer, data any) error {
	var text string
	switch d := data.(type) {
	case resp.Value:
		text = strings.Join(rawLines(d), "\n")
	case fmt.Stringer:
		text = strings.TrimRight(d.String(), "\n")
	default:
		text = fmt.Sprint(d)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

// Raw renders a single reply in redis-cli notation.
func Raw(v resp.Value) string {
	return strings.Join(rawLines(v), "\n")
}

func rawLines(v resp.Value) []string {
	switch v := v.(type) {
	case resp.SimpleString:
		return []string{v.Str}
	case resp.Error:
		return []string{"(error) " + v.Msg}
	case resp.Integer:
		return []string{"(integer) " + strconv.FormatInt(v.Int, 10)}
	case resp.BulkString:
		if v.Null {
			return []string{"(nil)"}
		}
		return []string{strconv.Quote(string(v.Bytes))}
	case resp.Array:
		if v.Null {
			return []string{"(nil)"}
		}
		if len(v.Elems) == 0 {
			return []string{"(empty array)"}
		}
		width := len(strconv.Itoa(len(v.Elems)))
		var out []string
		for i, e := range v.Elems {
			out = appendItem(out, fmt.Sprintf("%*d) ", width, i+1), rawLines(e))
		}
		return out
	case resp.Dictionary:
		if len(v.Pairs) == 0 {
			return []string{"(empty hash)"}
		}
		width := len(strconv.Itoa(len(v.Pairs)))
		var out []string
		for i, p := range v.Pairs {
			key := strings.Join(rawLines(p.Key), " ")
			out = appendItem(out, fmt.Sprintf("%*d# %s => ", width, i+1, key), rawLines(p.Val))
		}
		return out
	default:
		return []string{"(unknown)"}
	}
}

func appendItem(out []string, prefix string, lines []string) []string {
	pad := strings.Repeat(" ", len(prefix))
	for j, l := range lines {
		if j == 0 {
			out = append(out, prefix+l)
		} else {
			out = append(out, pad+l)
		}
	}
	return out
}
