package csvparser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Candidate is one encoding to try when decoding a payer list.
type Candidate struct {
	Name   string
	Decode func(raw []byte) (string, error)
}

// DecodeAttempt is the tagged outcome of decoding with one candidate.
// Err is nil for the attempt that succeeded.
type DecodeAttempt struct {
	Encoding string
	Err      error
}

// DecodeError is returned when no candidate encoding could decode a file.
type DecodeError struct {
	Path     string
	Attempts []DecodeAttempt
}

func (e *DecodeError) Error() string {
	names := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		names[i] = a.Encoding
	}
	return fmt.Sprintf("failed to decode CSV %s (tried %s): %v",
		e.Path, strings.Join(names, ", "), e.Unwrap())
}

// Unwrap returns the error of the last attempt.
func (e *DecodeError) Unwrap() error {
	if len(e.Attempts) == 0 {
		return nil
	}
	return e.Attempts[len(e.Attempts)-1].Err
}

// DefaultCandidates returns the encodings tried for every payer list, in
// order: UTF-8 (with or without BOM), Windows-1250, ISO-8859-1.
func DefaultCandidates() []Candidate {
	return []Candidate{
		{Name: "utf-8-sig", Decode: decodeUTF8Sig},
		{Name: "cp1250", Decode: charmapDecoder(charmap.Windows1250)},
		{Name: "latin-1", Decode: charmapDecoder(charmap.ISO8859_1)},
	}
}

// Decode tries each candidate in order and returns the first successful
// decoding together with every attempt made. If all fail, the returned
// error is the last attempt's error.
func Decode(raw []byte, candidates []Candidate) (string, []DecodeAttempt, error) {
	attempts := make([]DecodeAttempt, 0, len(candidates))
	var lastErr error = errors.New("no candidate encodings")

	for _, c := range candidates {
		text, err := c.Decode(raw)
		attempts = append(attempts, DecodeAttempt{Encoding: c.Name, Err: err})
		if err == nil {
			return text, attempts, nil
		}
		lastErr = err
	}

	return "", attempts, lastErr
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func decodeUTF8Sig(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("utf-8: invalid byte sequence at offset %d", invalidOffset(raw))
	}
	return string(raw), nil
}

func invalidOffset(raw []byte) int {
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

// charmapDecoder decodes a single-byte code page. Bytes the code page leaves
// undefined are a decode error rather than a replacement character.
func charmapDecoder(cm *charmap.Charmap) func([]byte) (string, error) {
	return func(raw []byte) (string, error) {
		var sb strings.Builder
		sb.Grow(len(raw))
		for i, b := range raw {
			r := cm.DecodeByte(b)
			if r == utf8.RuneError {
				return "", fmt.Errorf("%s: undefined byte 0x%02X at offset %d", cm, b, i)
			}
			sb.WriteRune(r)
		}
		return sb.String(), nil
	}
}
