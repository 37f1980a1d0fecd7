// Package resp implements the respkv wire protocol codec.
//
// The protocol is a RESP2-like, binary-safe serialization with six value kinds,
// each introduced by a one-byte type tag and terminated by CRLF:
//
//	+<text>\r\n                     simple string
//	-<message>\r\n                  error
//	:<signed-decimal>\r\n           integer
//	$<len>\r\n<len bytes>\r\n       bulk string ($-1\r\n is the null bulk string)
//	*<count>\r\n<count values>      array (*-1\r\n is the null array)
//	%<count>\r\n<2*count values>    dictionary (alternating key, value)
//
// Values are represented by the sealed Value interface. Reader decodes exactly
// one value per call from a buffered stream; Writer and Append encode values.
// Decoding never has side effects beyond consuming the bytes of the value.
//
// Error model:
//
//   - io.EOF: the stream ended cleanly before a value started.
//   - io.ErrUnexpectedEOF: the stream ended inside a value (framing is lost).
//   - *ProtocolError (wraps ErrProtocol): malformed bytes such as an unknown
//     type byte, a bad integer or a bad bulk terminator.
//   - ErrLimitExceeded: a declared length or nesting depth exceeds the
//     configured reader limits.
//   - *CommandError: the request decoded cleanly but is not a command
//     (returned by ReadCommand / ToCommand only).
package resp
