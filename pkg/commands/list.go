package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/catalog/pkg/commands/options"
	"tableflip.dev/catalog/pkg/notify"
	"tableflip.dev/catalog/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	lo := &options.ListOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List products, cheapest first",
		Example: `
catalog list
catalog list --show-id
catalog list --available
catalog list --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(true)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.close()

			l := list.List{
				Client:        e.client(),
				ShowID:        lo.ShowID,
				AvailableOnly: lo.Available,
				JSON:          output.JSON,
				Out:           cmd.OutOrStdout(),
				Sink:          notify.NewPrinter(),
				Logger:        e.logger,
			}
			return output.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddListArgs(cmd, lo)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
