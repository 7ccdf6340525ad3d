package source

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding is the detected text encoding of an export.
type Encoding string

const (
	UTF8     Encoding = "utf-8-sig"
	ShiftJIS Encoding = "cp932"
)

// Decode converts an export to UTF-8. Valid UTF-8 is taken as is, minus its
// byte order mark; anything else is decoded from the Windows Japanese
// codepage.
func Decode(data []byte) ([]byte, Encoding, error) {
	if utf8.Valid(data) {
		out, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), data)
		if err != nil {
			return nil, "", fmt.Errorf("cannot decode UTF-8: %w", err)
		}
		return out, UTF8, nil
	}
	out, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
	if err != nil {
		return nil, "", fmt.Errorf("cannot decode as UTF-8 nor %s: %w", ShiftJIS, err)
	}
	return out, ShiftJIS, nil
}

// ReadFile reads and decodes an export. A missing file is reported with an
// error wrapping fs.ErrNotExist.
func ReadFile(path string) ([]byte, Encoding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	text, enc, err := Decode(data)
	if err != nil {
		return nil, "", fmt.Errorf("%q: %w", path, err)
	}
	return text, enc, nil
}
