package tokenizer

import "unicode"

// EOF is returned by LookUpChar and ReadNextChar past the end of the source.
const EOF rune = -1

func isDigit(ch rune) bool {
	return ch != EOF && unicode.IsDigit(ch)
}

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isWhitespace(ch rune) bool {
	return ch != EOF && unicode.IsSpace(ch)
}

// isIdentifierStart matches the characters that may begin a Java identifier.
func isIdentifierStart(ch rune) bool {
	if ch == EOF {
		return false
	}
	return unicode.IsLetter(ch) ||
		ch == '_' || ch == '$' ||
		unicode.In(ch, unicode.Nl, unicode.Sc, unicode.Pc)
}

// isIdentifierPart matches the characters that may continue a Java identifier.
func isIdentifierPart(ch rune) bool {
	if ch == EOF {
		return false
	}
	if isIdentifierStart(ch) || unicode.IsDigit(ch) {
		return true
	}
	if unicode.In(ch, unicode.Mn, unicode.Mc, unicode.Cf) {
		return true
	}
	// identifier-ignorable control characters
	return (ch >= 0x00 && ch <= 0x08) || (ch >= 0x0E && ch <= 0x1B) || (ch >= 0x7F && ch <= 0x9F)
}
