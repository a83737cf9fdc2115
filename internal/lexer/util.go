package lexer

import (
	"unicode"
)

const utf8RuneSelf = 0x80

// ===== Классификаторы =====

// ASCII fast-path для идентификаторов; Unicode - через isIdentStartRune/Continue.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || (b >= '0' && b <= '9')
}
func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}
func isIdentContinueRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }
func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}

// blankLen возвращает длину в байтах невидимого пробела в начале b
// (U+FEFF, U+2060, U+200B, U+00A0) или 0.
func blankLen(b []byte) uint32 {
	switch {
	case len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF: // U+FEFF
		return 3
	case len(b) >= 3 && b[0] == 0xE2 && b[1] == 0x81 && b[2] == 0xA0: // U+2060
		return 3
	case len(b) >= 3 && b[0] == 0xE2 && b[1] == 0x80 && b[2] == 0x8B: // U+200B
		return 3
	case len(b) >= 2 && b[0] == 0xC2 && b[1] == 0xA0: // U+00A0
		return 2
	}
	return 0
}
