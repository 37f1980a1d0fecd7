package resp

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strconv"
)

// Default reader limits.
const (
	DefaultMaxBulkLen  = 512 * 1024 * 1024
	DefaultMaxArrayLen = 1024 * 1024
	DefaultMaxLineLen  = 64 * 1024
	DefaultMaxDepth    = 32

	// bulk payloads up to this size are read with a single allocation;
	// larger ones grow as bytes actually arrive.
	directReadLimit = 1024 * 1024
)

// Reader decodes protocol values from a buffered stream.
type Reader struct {
	br          *bufio.Reader
	maxBulkLen  int
	maxArrayLen int
	maxLineLen  int
	maxDepth    int
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithMaxBulkLen limits the declared length of a bulk string.
func WithMaxBulkLen(n int) ReaderOption {
	return func(r *Reader) {
		if n > 0 {
			r.maxBulkLen = n
		}
	}
}

// WithMaxArrayLen limits the declared element count of arrays and dictionaries.
func WithMaxArrayLen(n int) ReaderOption {
	return func(r *Reader) {
		if n > 0 {
			r.maxArrayLen = n
		}
	}
}

// WithMaxLineLen limits the length of simple string, error and integer lines.
func WithMaxLineLen(n int) ReaderOption {
	return func(r *Reader) {
		if n > 0 {
			r.maxLineLen = n
		}
	}
}

// WithMaxDepth limits the nesting depth of arrays and dictionaries.
func WithMaxDepth(n int) ReaderOption {
	return func(r *Reader) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// NewReader returns a Reader on rd. If rd is already a *bufio.Reader it is used as is.
func NewReader(rd io.Reader, opts ...ReaderOption) *Reader {
	br, ok := rd.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(rd)
	}
	r := &Reader{
		br:          br,
		maxBulkLen:  DefaultMaxBulkLen,
		maxArrayLen: DefaultMaxArrayLen,
		maxLineLen:  DefaultMaxLineLen,
		maxDepth:    DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Peek waits until at least one byte is available without consuming it.
// It is used to separate idle waiting from reading a value.
func (r *Reader) Peek() error {
	_, err := r.br.Peek(1)
	return err
}

// ReadValue decodes exactly one value from the stream.
func (r *Reader) ReadValue() (Value, error) {
	return r.readValue(0)
}

func (r *Reader) readValue(depth int) (Value, error) {
	tag, err := r.br.ReadByte()
	if err != nil {
		if depth > 0 {
			return nil, unexpected(err)
		}
		return nil, err
	}

	switch Kind(tag) {
	case KindSimpleString:
		line, err := r.readLine()
		if err != nil {
			return nil, err
		}
		return SimpleString{Str: string(line)}, nil
	case KindError:
		line, err := r.readLine()
		if err != nil {
			return nil, err
		}
		return Error{Msg: string(line)}, nil
	case KindInteger:
		line, err := r.readLine()
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(string(line), 10, 64)
		if err != nil {
			return nil, protocolErrorf("ERR bad integer")
		}
		return Integer{Int: n}, nil
	case KindBulkString:
		return r.readBulk()
	case KindArray:
		return r.readArray(depth)
	case KindDictionary:
		return r.readDictionary(depth)
	default:
		return nil, protocolErrorf("ERR unknown type byte %q", rune(tag))
	}
}

// readLine reads up to and including CRLF and returns the line without it.
func (r *Reader) readLine() ([]byte, error) {
	var buf []byte
	for {
		frag, err := r.br.ReadSlice('\n')
		if err == nil {
			buf = append(buf, frag...)
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			buf = append(buf, frag...)
			if len(buf) > r.maxLineLen+2 {
				return nil, limitErrorf("line length exceeds limit %d", r.maxLineLen)
			}
			continue
		}
		return nil, unexpected(err)
	}

	if len(buf) > r.maxLineLen+2 {
		return nil, limitErrorf("line length exceeds limit %d", r.maxLineLen)
	}
	if len(buf) < 2 || buf[len(buf)-2] != '\r' {
		return nil, protocolErrorf("ERR missing CRLF")
	}
	return buf[:len(buf)-2], nil
}

// readLength reads the count line of a bulk string, array or dictionary.
func (r *Reader) readLength(what string) (int, error) {
	line, err := r.readLine()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(string(line))
	if err != nil || n < -1 {
		return 0, protocolErrorf("ERR bad %s length", what)
	}
	return n, nil
}

func (r *Reader) readBulk() (Value, error) {
	n, err := r.readLength("bulk")
	if err != nil {
		return nil, err
	}
	if n == -1 {
		return BulkString{Null: true}, nil
	}
	if n > r.maxBulkLen {
		return nil, limitErrorf("bulk length %d exceeds limit %d", n, r.maxBulkLen)
	}

	var payload []byte
	if n+2 <= directReadLimit {
		payload = make([]byte, n+2)
		if _, err := io.ReadFull(r.br, payload); err != nil {
			return nil, unexpected(err)
		}
	} else {
		var buf bytes.Buffer
		buf.Grow(directReadLimit)
		if _, err := io.CopyN(&buf, r.br, int64(n+2)); err != nil {
			return nil, unexpected(err)
		}
		payload = buf.Bytes()
	}

	if payload[n] != '\r' || payload[n+1] != '\n' {
		return nil, protocolErrorf("ERR bad bulk terminator")
	}
	return BulkString{Bytes: payload[:n:n]}, nil
}

func (r *Reader) readArray(depth int) (Value, error) {
	n, err := r.readLength("array")
	if err != nil {
		return nil, err
	}
	if n == -1 {
		return Array{Null: true}, nil
	}
	if err := r.checkAggregate(n, depth); err != nil {
		return nil, err
	}

	elems := make([]Value, 0, min(n, 1024))
	for i := 0; i < n; i++ {
		v, err := r.readValue(depth + 1)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return Array{Elems: elems}, nil
}

func (r *Reader) readDictionary(depth int) (Value, error) {
	n, err := r.readLength("dictionary")
	if err != nil {
		return nil, err
	}
	if n == -1 {
		return Dictionary{Pairs: []Pair{}}, nil
	}
	if err := r.checkAggregate(n, depth); err != nil {
		return nil, err
	}

	pairs := make([]Pair, 0, min(n, 1024))
	for i := 0; i < n; i++ {
		k, err := r.readValue(depth + 1)
		if err != nil {
			return nil, err
		}
		v, err := r.readValue(depth + 1)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, Pair{Key: k, Val: v})
	}
	return Dictionary{Pairs: pairs}, nil
}

func (r *Reader) checkAggregate(n, depth int) error {
	if n > r.maxArrayLen {
		return limitErrorf("element count %d exceeds limit %d", n, r.maxArrayLen)
	}
	if depth+1 > r.maxDepth {
		return limitErrorf("nesting depth exceeds limit %d", r.maxDepth)
	}
	return nil
}

// unexpected maps a clean EOF inside a value to io.ErrUnexpectedEOF.
func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
