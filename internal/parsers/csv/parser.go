// Package csv parses delimited text (comma, semicolon or tab separated)
// into canonical catalog rows.
package csv

import (
	"strings"

	"github.com/cncmarket/catalog-service/internal/types"
	"github.com/rs/zerolog/log"
)

// Parse parses delimited text content into canonical rows. The first
// non-empty line is the header row; data lines are zipped positionally
// against it. Rows missing SKU or Name are dropped. Malformed input never
// fails the call: it just yields fewer (or zero) rows.
func Parse(content []byte) []types.CanonicalRow {
	lines := splitLines(string(content))
	if len(lines) == 0 {
		return nil
	}

	delimiter := DetectDelimiter(lines[0])

	headers := make([]string, 0)
	for _, cell := range SplitLine(lines[0], delimiter) {
		headers = append(headers, TrimCell(cell))
	}

	rows := make([]types.CanonicalRow, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cells := SplitLine(line, delimiter)

		fields := make(map[string]string, len(headers))
		for i, header := range headers {
			if i >= len(cells) {
				break
			}
			fields[header] = TrimCell(cells[i])
		}

		row, ok := types.RowFromFields(fields)
		if !ok {
			log.Debug().Str("line", line).Msg("Dropping row without SKU or Name")
			continue
		}
		rows = append(rows, row)
	}

	return rows
}

// splitLines splits content into non-empty lines handling both CRLF and LF
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := make([]string, 0)
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
