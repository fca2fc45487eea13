package commands

import (
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/catalog/pkg/commands/options"
	"tableflip.dev/catalog/pkg/notify"
	"tableflip.dev/catalog/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a product",
		Long: base.Wrap80(`Delete a product. Asks for confirmation unless --yes is given;
without a terminal on stdin --yes is required.`),
		Example: `
catalog delete 3f2b9c1e
catalog delete 3f2b9c1e --yes
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(true)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.close()

			r := remove.Remove{
				Client: e.client(),
				ID:     args[0],
				Yes:    co.Yes,
				Sink:   notify.NewPrinter(),
				Logger: e.logger,
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddConfirmArgs(cmd, co)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
