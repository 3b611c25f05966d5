package reconcile

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// roleParenRe strips the role parentheticals Yahoo appends for two-way players
var roleParenRe = regexp.MustCompile(`(?i)\s*\((batter|pitcher)\)`)

// escapedByteRe matches literal \xNN sequences left behind by a
// double-encoding bug in older exported data
var escapedByteRe = regexp.MustCompile(`\\x[0-9a-fA-F]{2}`)

// stripDiacritics decomposes accented characters and drops the combining
// marks, so "é" -> "e" without needing an accent table
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName canonicalizes a player display name from either provider into
// a comparison key: role parentheticals removed, encoding damage repaired,
// accents stripped, whitespace collapsed, lowercased. The key is only ever
// compared, never displayed. Always returns a string; empty input yields "".
func NormalizeName(raw string) string {
	if raw == "" {
		return ""
	}

	name := roleParenRe.ReplaceAllString(raw, "")
	name = repairEncoding(name)

	if stripped, _, err := transform.String(stripDiacritics, name); err == nil {
		name = stripped
	}

	name = strings.Join(strings.Fields(name), " ")
	return strings.ToLower(name)
}

// repairEncoding undoes two known corruption modes in provider exports:
// literal backslash-escaped byte sequences ("Jos\xc3\xa9") and UTF-8 bytes
// misread as Latin-1 ("JosÃ©"). Both repairs are attempted only when the
// result decodes as valid UTF-8; otherwise the input passes through
// unchanged, so already-correct text is never altered.
func repairEncoding(s string) string {
	if escapedByteRe.MatchString(s) {
		decoded := escapedByteRe.ReplaceAllStringFunc(s, func(esc string) string {
			b, err := strconv.ParseUint(esc[2:], 16, 8)
			if err != nil {
				return esc
			}
			return string([]byte{byte(b)})
		})
		if utf8.ValidString(decoded) {
			s = decoded
		}
	}

	if hasHighByteRune(s) {
		// Re-encoding as Latin-1 recovers the original byte stream; if that
		// stream is valid UTF-8 the text was mojibake, otherwise leave it.
		raw, err := charmap.ISO8859_1.NewEncoder().String(s)
		if err == nil && utf8.ValidString(raw) && raw != s {
			s = raw
		}
	}

	return s
}

func hasHighByteRune(s string) bool {
	for _, r := range s {
		if r >= 0x80 && r <= 0xFF {
			return true
		}
	}
	return false
}
