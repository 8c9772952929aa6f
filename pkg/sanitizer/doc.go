// Package sanitizer reduces user supplied strings, typically filenames, to a
// safe Latin alphabet.
//
// The package is stateless. Transliterate maps Cyrillic letters and Latin
// ligatures to ASCII and strips combining marks using golang.org/x/text
// (NFD decomposition, removal of Mn runes, NFC recomposition). ToLatin goes one
// step further and replaces everything outside [A-Za-z0-9._-].
//
// # Usage
//
//	import "github.com/dmitrymomot/uploader/pkg/sanitizer"
//
//	name := sanitizer.ToLatin("Café Münü.png", "", true)
//	// name == "CafeMunu.png"
//
//	name = sanitizer.ToLatin("Звіт за 2024.pdf", "-", true)
//	// name == "Zvit-za-2024.pdf"
//
// ToLatin matches the sanitizer signature expected by the uploader pipeline:
//
//	func(input, replacement string, transliterate bool) string
package sanitizer
