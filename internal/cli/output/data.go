package output

import (
	"fmt"

	"github.com/yndnr/respkv/internal/resp"
)

// ErrorReply is the structured form of an error reply.
type ErrorReply struct {
	Error string `json:"error" yaml:"error"`
}

// ToData converts a reply to plain Go values for structured encoders.
// Bulk strings become strings, null replies become nil and dictionaries
// become maps keyed by the rendered key.
func ToData(v resp.Value) any {
	switch v := v.(type) {
	case resp.SimpleString:
		return v.Str
	case resp.Error:
		return ErrorReply{Error: v.Msg}
	case resp.Integer:
		return v.Int
	case resp.BulkString:
		if v.Null {
			return nil
		}
		return string(v.Bytes)
	case resp.Array:
		if v.Null {
			return nil
		}
		out := make([]any, len(v.Elems))
		for i, e := range v.Elems {
			out[i] = ToData(e)
		}
		return out
	case resp.Dictionary:
		out := make(map[string]any, len(v.Pairs))
		for _, p := range v.Pairs {
			out[fmt.Sprint(ToData(p.Key))] = ToData(p.Val)
		}
		return out
	default:
		return nil
	}
}

func normalize(data any) any {
	if v, ok := data.(resp.Value); ok {
		return ToData(v)
	}
	return data
}
