package cli

import (
	"github.com/spf13/cobra"

	"aarshjul/internal/config"
	applog "aarshjul/internal/log"
	"aarshjul/internal/storage"
)

// App holds the shared dependencies used by CLI commands.
type App struct {
	Config *config.Config
	Logger *applog.Logger
	Store  *storage.Store
}

// NewRootCmd creates the top-level "aarshjul" command and registers
// all subcommands against the provided App. Running the bare command
// starts the web server.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "aarshjul",
		Short:         "Årshjul activity planner",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), app)
		},
	}

	root.AddCommand(
		newServeCmd(app),
		newExportCmd(app),
		newImportCmd(app),
	)

	return root
}
