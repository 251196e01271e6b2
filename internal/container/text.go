package container

import (
	"unicode/utf8"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// textString encodes s as a PDF text string. Printable ASCII is written as an
// escaped literal; anything else as UTF-16BE with a byte order mark.
func textString(s string) types.Object {
	if isPrintableASCII(s) {
		if esc, err := types.Escape(s); err == nil {
			return types.StringLiteral(*esc)
		}
	}

	return types.NewHexLiteral([]byte(types.EncodeUTF16String(s)))
}

func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < 0x20 || c > 0x7e {
			return false
		}
	}

	return true
}

// decodeText decodes a PDF text string object. Byte strings that are neither
// UTF-16BE nor UTF-8 are read one code point per byte.
func decodeText(o types.Object) (string, bool) {
	s, err := types.StringOrHexLiteral(o)
	if err != nil || s == nil {
		return "", false
	}

	if !utf8.ValidString(*s) {
		return types.CP1252ToUTF8(*s), true
	}

	return *s, true
}
