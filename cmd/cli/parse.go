package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cncmarket/catalog-service/internal/importer"
	"github.com/cncmarket/catalog-service/internal/parsers/csv"
	jsonparser "github.com/cncmarket/catalog-service/internal/parsers/json"
	"github.com/cncmarket/catalog-service/internal/parsers/xlsx"
	"github.com/cncmarket/catalog-service/internal/parsers/xml"
	"github.com/cncmarket/catalog-service/internal/types"
)

var parseOutput string

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a catalog file without importing it",
	Long: `Parse a local catalog file and report what an import would see. The file
format is detected from the extension (.csv, .tsv, .txt, .xml, .json, .xlsx).
No database connection is made and nothing is written.`,
	Example: `  catalog-service parse ./catalogs/cnc-parts.csv
  catalog-service parse ./catalogs/supplier.xml --output json`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&parseOutput, "output", "table", "Output format: table or json")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, ok := importer.Format(filePath)
	if !ok {
		return fmt.Errorf("unsupported file extension: %s", filepath.Ext(filePath))
	}

	logger.Info().Str("file", filePath).Msg("Reading file")
	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var rows []types.CanonicalRow
	switch format {
	case types.FormatDelimited:
		rows = csv.Parse(content)
	case types.FormatXML:
		rows = xml.Parse(content)
	case types.FormatJSON:
		rows = jsonparser.Parse(content)
	case types.FormatXLSX:
		rows = xlsx.Parse(content)
	}

	if parseOutput == "json" {
		out, err := json.MarshalIndent(map[string]interface{}{
			"file":   filePath,
			"format": format,
			"rows":   rows,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("File: %s\nFormat: %s\nRows: %d\n\n", filePath, format, len(rows))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SKU\tNAME\tPRICE\tBRAND\tCATEGORIES")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", row.SKU, row.Name, row.Price, row.BrandName, row.CategoryNames)
	}
	return w.Flush()
}
