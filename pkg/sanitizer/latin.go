package sanitizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// transliterations covers letters that do not decompose into an ASCII base
// plus combining marks: Cyrillic and a handful of Latin ligatures and strokes.
var transliterations = map[rune]string{
	// Cyrillic (Ukrainian and Russian alphabets)
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'ґ': "g", 'д': "d", 'е': "e",
	'є': "ye", 'ё': "yo", 'ж': "zh", 'з': "z", 'и': "y", 'і': "i", 'ї': "i",
	'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n", 'о': "o", 'п': "p",
	'р': "r", 'с': "s", 'т': "t", 'у': "u", 'ф': "f", 'х': "kh", 'ц': "ts",
	'ч': "ch", 'ш': "sh", 'щ': "shch", 'ъ': "", 'ы': "y", 'ь': "", 'э': "e",
	'ю': "yu", 'я': "ya",

	// Latin letters without a canonical decomposition
	'ß': "ss", 'æ': "ae", 'œ': "oe", 'ø': "o", 'ł': "l", 'đ': "d",
	'ð': "d", 'þ': "th", 'ı': "i", 'ħ': "h", 'ŧ': "t",
}

func init() {
	// Derive upper-case forms: 'Ж' -> "Zh", 'Æ' -> "Ae"
	upper := make(map[rune]string, len(transliterations))
	for r, s := range transliterations {
		u := unicode.ToUpper(r)
		if u == r || u < unicode.MaxASCII {
			continue
		}
		if s != "" {
			s = strings.ToUpper(s[:1]) + s[1:]
		}
		upper[u] = s
	}
	for r, s := range upper {
		transliterations[r] = s
	}
}

// stripMarks decomposes runes and drops the combining marks: é -> e, ü -> u.
// Chained transformers keep state, so each call builds its own.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Transliterate converts s to its closest Latin representation.
// Runes without a known Latin form are passed through unchanged.
//
// Example:
//
//	sanitizer.Transliterate("Café Київ") // "Cafe Kyiv"
func Transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if t, ok := transliterations[r]; ok {
			b.WriteString(t)
			continue
		}
		b.WriteRune(r)
	}

	out, _, err := transform.String(stripMarks(), b.String())
	if err != nil {
		return b.String()
	}
	return out
}

// ToLatin reduces s to the filename-safe alphabet [A-Za-z0-9._-].
// When transliterate is true, letters are first converted to Latin (see
// Transliterate). Every rune outside the safe alphabet is replaced with
// replacement; consecutive replacements collapse into one and leading or
// trailing replacements are trimmed. An empty replacement drops the runes.
//
// Example:
//
//	sanitizer.ToLatin("Café Münü.png", "", true)   // "CafeMunu.png"
//	sanitizer.ToLatin("Мій файл.txt", "_", true)   // "Miy_fayl.txt"
//	sanitizer.ToLatin("Мій файл.txt", "_", false)  // ".txt"
func ToLatin(s, replacement string, transliterate bool) string {
	if transliterate {
		s = Transliterate(s)
	}

	var b strings.Builder
	b.Grow(len(s))
	lastWasReplacement := false
	for _, r := range s {
		if isFilenameSafe(r) {
			b.WriteRune(r)
			lastWasReplacement = false
			continue
		}
		if replacement != "" && !lastWasReplacement {
			b.WriteString(replacement)
			lastWasReplacement = true
		}
	}

	out := b.String()
	if replacement != "" {
		for strings.HasPrefix(out, replacement) {
			out = strings.TrimPrefix(out, replacement)
		}
		for strings.HasSuffix(out, replacement) {
			out = strings.TrimSuffix(out, replacement)
		}
	}
	return out
}

func isFilenameSafe(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
		r == '.' || r == '-' || r == '_'
}
