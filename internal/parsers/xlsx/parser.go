// Package xlsx parses spreadsheet workbooks into canonical catalog rows.
package xlsx

import (
	"bytes"
	"strings"

	"github.com/cncmarket/catalog-service/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// Parse parses the first sheet of an XLSX workbook into canonical rows. The
// first row is the header row; like the delimited parser, data rows are
// zipped positionally and rows without SKU or Name are dropped. Unreadable
// workbooks parse to zero rows.
func Parse(content []byte) []types.CanonicalRow {
	workbook, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		log.Warn().Err(err).Msg("Failed to open XLSX workbook")
		return nil
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil
	}

	cells, err := workbook.GetRows(sheets[0])
	if err != nil {
		log.Warn().Err(err).Str("sheet", sheets[0]).Msg("Failed to read sheet rows")
		return nil
	}
	if len(cells) == 0 {
		return nil
	}

	headers := make([]string, 0, len(cells[0]))
	for _, header := range cells[0] {
		headers = append(headers, strings.TrimSpace(header))
	}

	rows := make([]types.CanonicalRow, 0, len(cells)-1)
	for _, line := range cells[1:] {
		fields := make(map[string]string, len(headers))
		for i, header := range headers {
			if i >= len(line) {
				break
			}
			fields[header] = strings.TrimSpace(line[i])
		}

		row, ok := types.RowFromFields(fields)
		if !ok {
			continue
		}
		rows = append(rows, row)
	}

	return rows
}
