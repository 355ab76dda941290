package core

// streaming.go holds the io.Reader wrappers applied to every CSV stream
// before parsing:
//
//   - skipBOM drops a leading UTF-8 byte order mark written by Excel
//   - utf8Sanitizer replaces invalid UTF-8 bytes with U+FFFD
//   - countingReader records how many bytes the parser consumed
//
// Use wrapForIngest to apply them in the right order.

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM returns a reader positioned after a leading UTF-8 BOM, if any.
func skipBOM(r io.Reader) *bufio.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// utf8Sanitizer decodes its source rune by rune and re-encodes it, turning
// every invalid byte into the replacement character.
type utf8Sanitizer struct {
	src     *bufio.Reader
	pending []byte
}

func newUTF8Sanitizer(src *bufio.Reader) *utf8Sanitizer {
	return &utf8Sanitizer{src: src}
}

// Read implements io.Reader.
func (s *utf8Sanitizer) Read(p []byte) (int, error) {
	n := 0
	var buf [utf8.UTFMax]byte
	for n < len(p) {
		if len(s.pending) > 0 {
			c := copy(p[n:], s.pending)
			s.pending = s.pending[c:]
			n += c
			continue
		}

		r, _, err := s.src.ReadRune()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		// ReadRune reports invalid bytes as utf8.RuneError, which encodes as U+FFFD.
		m := utf8.EncodeRune(buf[:], r)
		c := copy(p[n:], buf[:m])
		n += c
		if c < m {
			s.pending = append(s.pending[:0], buf[c:m]...)
		}
	}
	return n, nil
}

// countingReader tracks the number of bytes read through it.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// BytesRead returns the number of raw bytes consumed so far.
func (c *countingReader) BytesRead() int64 {
	return c.n
}

// wrapForIngest counts raw bytes, strips the BOM and sanitizes UTF-8.
// The counter sits closest to the source so it reports the file size.
func wrapForIngest(r io.Reader) (io.Reader, *countingReader) {
	counter := &countingReader{r: r}
	return newUTF8Sanitizer(skipBOM(counter)), counter
}
