package file

import (
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"
)

// nameEntropyBytes is the amount of randomness in every stored name (128 bits).
const nameEntropyBytes = 16

// GenerateName returns a fresh stored name: 32 hex characters drawn from random,
// followed by the extension of originalName. It fails with ErrRandomSource
// rather than falling back to a weaker source.
func GenerateName(random io.Reader, originalName string) (string, error) {
	buf := make([]byte, nameEntropyBytes)
	if _, err := io.ReadFull(random, buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRandomSource, err)
	}
	return hex.EncodeToString(buf) + Ext(originalName), nil
}

// Ext returns the extension of the base of name, from the last dot onward,
// including the dot. Extensions with anything outside [A-Za-z0-9._+-] are
// dropped, so a stored name is always safe as a URL path segment and inside a
// quoted header value.
func Ext(name string) string {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	if base == "." || base == ".." || base == "/" {
		return ""
	}
	ext := path.Ext(base)
	if strings.ContainsFunc(ext, unsafeNameRune) {
		return ""
	}
	return ext
}

func unsafeNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case r == '.', r == '_', r == '+', r == '-':
		return false
	}
	return true
}
