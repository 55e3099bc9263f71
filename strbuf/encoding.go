package strbuf

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/pavanmanishd/nstd/alloc"
	"github.com/pavanmanishd/nstd/view"
)

// StringFromEncoded decodes b from a legacy character set (for example
// charmap.Windows1252) into a new UTF-8 String.
func StringFromEncoded(a alloc.Allocator, enc encoding.Encoding, b []byte) (String, error) {
	out, _, err := transform.Bytes(enc.NewDecoder(), b)
	if err != nil {
		return String{}, fmt.Errorf("strbuf: decode: %w", err)
	}
	str, err := view.StrFromBytes(out)
	if err != nil {
		return String{}, err
	}
	return StringFromStr(a, str), nil
}

// Encode converts the text to enc. Runes enc cannot represent make it fail.
func (s *String) Encode(enc encoding.Encoding) ([]byte, error) {
	out, _, err := transform.Bytes(enc.NewEncoder(), s.bytes.Bytes())
	if err != nil {
		return nil, fmt.Errorf("strbuf: encode: %w", err)
	}
	return out, nil
}
