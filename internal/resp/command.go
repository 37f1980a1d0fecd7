package resp

import (
	"bytes"
	"fmt"
)

// ReadCommand decodes one request and converts it to a command line.
// Codec failures are returned as is; a request of the wrong shape yields *CommandError.
func (r *Reader) ReadCommand() ([][]byte, error) {
	v, err := r.ReadValue()
	if err != nil {
		return nil, err
	}
	return ToCommand(v)
}

// ToCommand converts a decoded request into its command line.
//
// Accepted shapes are an array of non-null bulk strings and a simple string
// holding a whitespace separated inline command.
func ToCommand(v Value) ([][]byte, error) {
	switch v := v.(type) {
	case Array:
		if v.Null {
			return nil, &CommandError{Msg: "null array"}
		}
		if len(v.Elems) == 0 {
			return nil, &CommandError{Msg: "empty array"}
		}
		args := make([][]byte, len(v.Elems))
		for i, e := range v.Elems {
			switch e := e.(type) {
			case BulkString:
				if e.Null {
					return nil, &CommandError{Msg: fmt.Sprintf("null bulk string at position %d", i)}
				}
				args[i] = e.Bytes
			default:
				return nil, &CommandError{Msg: fmt.Sprintf("element %d is %s, want bulk string", i, e.Kind())}
			}
		}
		return args, nil
	case SimpleString:
		args := bytes.Fields([]byte(v.Str))
		if len(args) == 0 {
			return nil, &CommandError{Msg: "empty inline command"}
		}
		return args, nil
	default:
		return nil, &CommandError{Msg: fmt.Sprintf("request is %s, want array of bulk strings", v.Kind())}
	}
}

// CommandValue builds the request value for a command line.
func CommandValue(args ...[]byte) Array {
	return NewBulkArray(args)
}
