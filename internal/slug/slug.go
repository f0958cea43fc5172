// Package slug builds URL-safe identifiers from catalog names.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Turkish-specific mappings applied before general diacritic stripping,
// since ı and İ do not reduce to ASCII via NFD decomposition.
var turkishReplacer = strings.NewReplacer(
	"ç", "c", "Ç", "c",
	"ğ", "g", "Ğ", "g",
	"ı", "i", "İ", "i",
	"ö", "o", "Ö", "o",
	"ş", "s", "Ş", "s",
	"ü", "u", "Ü", "u",
)

// Make slugifies a name: Turkish folding, diacritic removal, lowercasing,
// non-alphanumeric runs collapsed to a single '-', leading/trailing '-'
// trimmed.
func Make(s string) string {
	s = turkishReplacer.Replace(s)

	// NFD normalization + strip combining marks for remaining diacritics
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, _ = transform.String(t, s)

	s = strings.ToLower(s)

	var b strings.Builder
	pendingDash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}

	return b.String()
}

// ForProduct derives a product slug from its name and SKU. The SKU suffix
// guarantees uniqueness even when two products share a human-readable name.
func ForProduct(name, sku string) string {
	return Make(name) + "-" + strings.ToLower(strings.TrimSpace(sku))
}
