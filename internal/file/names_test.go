package file

import (
	"bytes"
	"crypto/rand"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storedNameRe = regexp.MustCompile(`^[0-9a-f]{32}`)

func TestGenerateName_HexPlusExtension(t *testing.T) {
	name, err := GenerateName(rand.Reader, "holiday.png")
	require.NoError(t, err)

	assert.Len(t, name, 32+len(".png"))
	assert.Regexp(t, storedNameRe, name)
	assert.Equal(t, ".png", name[32:])
}

func TestGenerateName_Deterministic(t *testing.T) {
	src := bytes.NewReader(bytes.Repeat([]byte{0xab}, 16))
	name, err := GenerateName(src, "report.final.pdf")
	require.NoError(t, err)
	assert.Equal(t, "abababababababababababababababab.pdf", name)
}

func TestGenerateName_SameOriginalNameDiffers(t *testing.T) {
	a, err := GenerateName(rand.Reader, "cat.jpg")
	require.NoError(t, err)
	b, err := GenerateName(rand.Reader, "cat.jpg")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestGenerateName_RandomSourceFailure(t *testing.T) {
	name, err := GenerateName(failingReader{}, "cat.jpg")
	assert.Empty(t, name)
	assert.True(t, errors.Is(err, ErrRandomSource), "got %v", err)

	// a short read is a failure too
	_, err = GenerateName(bytes.NewReader([]byte{1, 2, 3}), "cat.jpg")
	assert.True(t, errors.Is(err, ErrRandomSource))
}

func TestExt(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.jpeg", ".jpeg"},
		{"archive.tar.gz", ".gz"},
		{"README", ""},
		{"", ""},
		{"trailing.", "."},
		{"dir.d/file", ""},
		{`C:\Users\me\notes.txt`, ".txt"},
		{".bashrc", ".bashrc"},
		{`evil."quoted`, ""},
		{"spaced. ext", ""},
		{"tab.a\tb", ""},
		{"notes.a#b", ""},
		{"scan.x?y", ""},
		{"rate.50%", ""},
		{"page.a&b", ""},
		{"photo.jpé", ""},
		{"bundle.tar_v2-1+x", ".tar_v2-1+x"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Ext(tc.in))
		})
	}
}
