package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cncmarket/catalog-service/internal/audit"
	"github.com/cncmarket/catalog-service/internal/database"
	"github.com/cncmarket/catalog-service/internal/importer"
)

var importActor string

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a catalog file into the database",
	Long: `Import a local catalog file into the store database. Products are created
for new SKUs; existing SKUs are skipped. Brands and categories referenced by
the file are created on first use. Row failures are reported at the end and
never abort the run.`,
	Example: `  catalog-service import ./catalogs/cnc-parts.csv
  catalog-service import ./catalogs/supplier.xlsx --actor ops@cncmarket`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importActor, "actor", "cli", "Actor recorded in the audit trail")
}

func runImport(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	ctx := context.Background()

	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	catalog := database.NewCatalog(database.Pool())
	svc := importer.New(catalog, cfg.Import.BatchSize, cfg.Import.DefaultCurrency)

	result, err := svc.ImportFile(ctx, filePath, content)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	audit.NewRecorder(database.Pool()).BulkImport(ctx, importActor, result)

	fmt.Printf("Imported %d products, skipped %d\n", result.Created, result.Skipped)
	if len(result.Errors) > 0 {
		fmt.Printf("\n%d rows failed:\n", len(result.Errors))
		for _, rowErr := range result.Errors {
			fmt.Printf("  %s\n", rowErr.String())
		}
	}
	return nil
}
