package machine

import (
	"io"

	"github.com/blackwell-systems/enigma/wheel"
)

// EncodeByte encodes one byte. Letters step the chain and come out
// lowercase; any other byte is returned unchanged without stepping.
func (m *Machine) EncodeByte(c byte) byte {
	if !wheel.IsLetter(c) {
		return c
	}
	m.Step()
	return byte('a' + m.substitute(wheel.Letter(c)))
}

// Encode transforms s one byte at a time. The result has the same length as
// s. Encoding is reciprocal: running the output through a machine reset to
// the same starting state yields s with its letters lowercased.
func (m *Machine) Encode(s string) string {
	out := make([]byte, len(s))
	m.encodeInto(out, []byte(s))
	return string(out)
}

// EncodeBytes encodes src into dst and returns the number of bytes written,
// which is min(len(dst), len(src)).
func (m *Machine) EncodeBytes(dst, src []byte) int {
	if len(dst) < len(src) {
		src = src[:len(dst)]
	}
	m.encodeInto(dst, src)
	return len(src)
}

func (m *Machine) encodeInto(dst, src []byte) {
	for i, c := range src {
		dst[i] = m.EncodeByte(c)
	}
}

// Writer encodes everything written to it before passing it on.
type Writer struct {
	m   *Machine
	w   io.Writer
	buf []byte
}

// NewWriter returns a Writer that encodes through m into w. The machine state
// carries across writes, so chunked input encodes the same as one write.
func NewWriter(m *Machine, w io.Writer) *Writer {
	return &Writer{m: m, w: w}
}

// Write encodes p and writes it on. After a short write the machine is left
// as if only the first n bytes had been encoded, so the rest can be retried.
func (ew *Writer) Write(p []byte) (int, error) {
	if cap(ew.buf) < len(p) {
		ew.buf = make([]byte, len(p))
	}
	buf := ew.buf[:len(p)]
	start := *ew.m
	ew.m.encodeInto(buf, p)
	n, err := ew.w.Write(buf)
	if n < len(p) {
		if n < 0 {
			n = 0
		}
		*ew.m = start
		ew.m.encodeInto(buf[:n], p[:n])
		if err == nil {
			err = io.ErrShortWrite
		}
	}
	return n, err
}
