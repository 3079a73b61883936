package machine

import (
	"bytes"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sentence = "ceci est un long message chiffre avec la technique de la machine enigma"
	allA     = "aaaa aaa aa aaaa aaaaaaa aaaaaaa aaaa aa aaaaaaaaa aa aa aaaaaaa aaaaaa"
)

func TestEncodeRoundTrip(t *testing.T) {
	for _, plain := range []string{sentence, allA} {
		m := NewDefault()
		cipher := m.Encode(plain)
		require.Len(t, cipher, len(plain))
		assert.NotEqual(t, plain, cipher)

		Preset(m)
		assert.Equal(t, plain, m.Encode(cipher))
	}
}

func TestEncodeNoLetterMapsToItself(t *testing.T) {
	m := NewDefault()
	cipher := m.Encode(allA)
	for i := range allA {
		if allA[i] == ' ' {
			assert.Equal(t, byte(' '), cipher[i])
			continue
		}
		assert.NotEqual(t, byte('a'), cipher[i], "index %d", i)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	a := NewDefault().Encode(sentence)
	b := NewDefault().Encode(sentence)
	assert.Equal(t, a, b)
}

func TestEncodeLowercasesOutput(t *testing.T) {
	upper := NewDefault().Encode(strings.ToUpper(sentence))
	lower := NewDefault().Encode(sentence)
	assert.Equal(t, lower, upper)
	assert.Equal(t, strings.ToLower(upper), upper)

	m := NewDefault()
	cipher := m.Encode("Hello World")
	Preset(m)
	assert.Equal(t, "hello world", m.Encode(cipher))
}

func TestEncodePassThrough(t *testing.T) {
	m := NewDefault()
	in := " ,.!?0123456789\t\n-é"
	out := m.Encode(in)
	assert.Equal(t, in, out)
	assert.Equal(t, PresetPositions(), m.Positions())
}

func TestEncodeNonLettersDoNotStep(t *testing.T) {
	spaced := NewDefault().Encode("a b c")
	packed := NewDefault().Encode("abc")
	assert.Equal(t, packed, strings.ReplaceAll(spaced, " ", ""))
}

func TestEncodeChunked(t *testing.T) {
	whole := NewDefault().Encode(sentence)

	m := NewDefault()
	var sb strings.Builder
	for i := 0; i < len(sentence); i += 7 {
		end := i + 7
		if end > len(sentence) {
			end = len(sentence)
		}
		sb.WriteString(m.Encode(sentence[i:end]))
	}
	assert.Equal(t, whole, sb.String())
}

func TestEncodeBytes(t *testing.T) {
	want := NewDefault().Encode(sentence)

	dst := make([]byte, len(sentence))
	n := NewDefault().EncodeBytes(dst, []byte(sentence))
	assert.Equal(t, len(sentence), n)
	assert.Equal(t, want, string(dst))

	short := make([]byte, 4)
	n = NewDefault().EncodeBytes(short, []byte(sentence))
	assert.Equal(t, 4, n)
	assert.Equal(t, want[:4], string(short))
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(NewDefault(), &buf)
	for _, part := range strings.SplitAfter(sentence, " ") {
		_, err := w.Write([]byte(part))
		require.NoError(t, err)
	}
	assert.Equal(t, NewDefault().Encode(sentence), buf.String())
}

func TestEncodeEmptyChainUsesReflector(t *testing.T) {
	m := New()
	m.SetReflector(ReflectorWiring)
	assert.Equal(t, "ejm", m.Encode("abc"))
}

func TestEncodeRandomConfigurations(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	letters := "abcdefghijklmnopqrstuvwxyz     "

	for trial := 0; trial < 50; trial++ {
		base := NewDefault()
		order := rng.Perm(MaxWheels)[:1+rng.Intn(MaxWheels)]
		for i := range order {
			order[i]++
		}
		require.NoError(t, base.SetOrder(order...))
		for k := 0; k < MaxWheels; k++ {
			require.NoError(t, base.SetPosition(k, rng.Intn(26)))
		}

		text := make([]byte, 200)
		for i := range text {
			text[i] = letters[rng.Intn(len(letters))]
		}

		cipher := base.Clone().Encode(string(text))
		assert.Equal(t, string(text), base.Clone().Encode(cipher), "order %v", order)
	}
}

// limitWriter accepts at most limit bytes per call.
type limitWriter struct {
	buf   bytes.Buffer
	limit int
}

func (lw *limitWriter) Write(p []byte) (int, error) {
	if len(p) > lw.limit {
		p = p[:lw.limit]
	}
	return lw.buf.Write(p)
}

func TestWriterShortWriteRetry(t *testing.T) {
	dst := &limitWriter{limit: 5}
	w := NewWriter(NewDefault(), dst)

	rest := []byte(sentence)
	for len(rest) > 0 {
		n, err := w.Write(rest)
		if err != nil {
			require.ErrorIs(t, err, io.ErrShortWrite)
		}
		require.Positive(t, n)
		rest = rest[n:]
	}
	assert.Equal(t, NewDefault().Encode(sentence), dst.buf.String())
}
