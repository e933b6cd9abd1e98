package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aarshjul/internal/core"
	applog "aarshjul/internal/log"
)

// newExportCmd writes the item collection as JSON, to a file when given
// one and to stdout otherwise. The format matches the web export.
func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export activities as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items := core.SortItems(app.Store.ReadItems(cmd.Context()))

			raw, err := json.MarshalIndent(items, "", "  ")
			if err != nil {
				return fmt.Errorf("marshalling items: %w", err)
			}
			raw = append(raw, '\n')

			if len(args) == 0 {
				_, err := cmd.OutOrStdout().Write(raw)
				return err
			}

			if err := os.WriteFile(args[0], raw, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", args[0], err)
			}
			app.Logger.Info("Items exported",
				applog.FieldOperation, applog.OpExport,
				"count", len(items), "file", args[0])
			return nil
		},
	}
}

// newImportCmd replaces the item collection from a JSON file holding an
// activity array. Anything else is rejected and the store is left
// untouched; invalid records are dropped with a warning so the reported
// count only covers items a later read will return.
func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace activities from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			var items []core.Item
			if err := json.Unmarshal(raw, &items); err != nil || items == nil {
				return fmt.Errorf("%s does not hold an activity array", args[0])
			}

			kept := make([]core.Item, 0, len(items))
			for _, it := range items {
				it = it.Normalize()
				if err := it.Validate(); err != nil {
					app.Logger.Warn("Dropping invalid imported item",
						applog.FieldOperation, applog.OpImport,
						applog.FieldItemTitle, it.Title,
						applog.FieldError, err)
					continue
				}
				if it.ID == "" {
					it.ID = app.Store.GenerateID()
				}
				kept = append(kept, it)
			}

			if err := app.Store.WriteItems(cmd.Context(), kept); err != nil {
				return fmt.Errorf("persisting imported items: %w", err)
			}

			app.Logger.Info("Items imported",
				applog.FieldOperation, applog.OpImport,
				"count", len(kept), "file", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Importerede %d aktiviteter\n", len(kept))
			return nil
		},
	}
}
