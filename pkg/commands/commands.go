package commands

import (
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/catalog/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
	global = &globalOptions{}
)

// globalOptions are persistent flags shared by every verb.
type globalOptions struct {
	Server string
}

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: base.Wrap80("Manage a product catalog from the terminal, with an autosaved entry form."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&global.Server, "server", "",
		`Catalog server URL, defaults to the "server" setting.`)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addServe(topLevel)
	addList(topLevel)
	addShow(topLevel)
	addAdd(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addDraft(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
