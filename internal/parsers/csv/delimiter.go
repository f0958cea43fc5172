package csv

import "strings"

// Delimiter represents supported delimiters
type Delimiter rune

const (
	DelimiterTab       Delimiter = '\t'
	DelimiterSemicolon Delimiter = ';'
	DelimiterComma     Delimiter = ','
)

// DetectDelimiter picks the delimiter from the header line. Priority order is
// tab, semicolon, comma: a tab in the header wins even when commas appear in
// data cells, and semicolon beats comma when both are present.
func DetectDelimiter(headerLine string) Delimiter {
	switch {
	case strings.ContainsRune(headerLine, '\t'):
		return DelimiterTab
	case strings.ContainsRune(headerLine, ';'):
		return DelimiterSemicolon
	default:
		return DelimiterComma
	}
}

// SplitLine splits a line on the delimiter, honouring double-quoted fields
// so a quoted cell may contain the delimiter. Doubled quotes inside a quoted
// field decode to a literal quote.
func SplitLine(line string, delimiter Delimiter) []string {
	fields := make([]string, 0, 10)
	var current strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if inQuotes {
			if r == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					current.WriteRune('"')
					i++
					continue
				}
				inQuotes = false
				continue
			}
			current.WriteRune(r)
			continue
		}

		switch r {
		case '"':
			inQuotes = true
		case rune(delimiter):
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, current.String())

	return fields
}

// TrimCell trims whitespace and strips one leading/trailing single or double
// quote left over from loosely quoted exports.
func TrimCell(cell string) string {
	cell = strings.TrimSpace(cell)
	for _, q := range []string{`"`, `'`} {
		cell = strings.TrimPrefix(cell, q)
		cell = strings.TrimSuffix(cell, q)
	}
	return strings.TrimSpace(cell)
}
