package resp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

var crlf = []byte("\r\n")

// scratch buffers above this capacity are dropped after a write.
const maxRetainedScratch = 64 * 1024

// Writer encodes protocol values onto a buffered stream.
// Bytes reach the underlying writer on Flush or when the buffer fills.
type Writer struct {
	bw      *bufio.Writer
	scratch []byte
}

// NewWriter returns a Writer on wr. If wr is already a *bufio.Writer it is used as is.
func NewWriter(wr io.Writer) *Writer {
	bw, ok := wr.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriter(wr)
	}
	return &Writer{bw: bw}
}

// WriteValue appends the wire form of v to the buffer.
func (w *Writer) WriteValue(v Value) error {
	w.scratch = Append(w.scratch[:0], v)
	_, err := w.bw.Write(w.scratch)
	if cap(w.scratch) > maxRetainedScratch {
		w.scratch = nil
	}
	return err
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}

// Append appends the wire form of v to dst and returns the extended slice.
// A nil v encodes as the null bulk string.
func Append(dst []byte, v Value) []byte {
	switch v := v.(type) {
	case nil:
		return append(dst, "$-1\r\n"...)
	case SimpleString:
		dst = append(dst, byte(KindSimpleString))
		return appendLine(dst, v.Str)
	case Error:
		dst = append(dst, byte(KindError))
		return appendLine(dst, v.Msg)
	case Integer:
		dst = append(dst, byte(KindInteger))
		dst = strconv.AppendInt(dst, v.Int, 10)
		return append(dst, crlf...)
	case BulkString:
		if v.Null {
			return append(dst, "$-1\r\n"...)
		}
		dst = appendHeader(dst, KindBulkString, len(v.Bytes))
		dst = append(dst, v.Bytes...)
		return append(dst, crlf...)
	case Array:
		if v.Null {
			return append(dst, "*-1\r\n"...)
		}
		dst = appendHeader(dst, KindArray, len(v.Elems))
		for _, e := range v.Elems {
			dst = Append(dst, e)
		}
		return dst
	case Dictionary:
		dst = appendHeader(dst, KindDictionary, len(v.Pairs))
		for _, p := range v.Pairs {
			dst = Append(dst, p.Key)
			dst = Append(dst, p.Val)
		}
		return dst
	default:
		panic(fmt.Sprintf("resp: unsupported value type %T", v))
	}
}

func appendHeader(dst []byte, k Kind, n int) []byte {
	dst = append(dst, byte(k))
	dst = strconv.AppendInt(dst, int64(n), 10)
	return append(dst, crlf...)
}

// appendLine writes a line payload, replacing CR and LF so framing stays intact.
func appendLine(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\r' || c == '\n' {
			c = ' '
		}
		dst = append(dst, c)
	}
	return append(dst, crlf...)
}
