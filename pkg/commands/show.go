package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/catalog/pkg/commands/options"
	"tableflip.dev/catalog/pkg/notify"
	"tableflip.dev/catalog/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one product",
		Example: `
catalog show 3f2b9c1e
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(true)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.close()

			s := show.Show{
				Client: e.client(),
				ID:     args[0],
				JSON:   output.JSON,
				Out:    cmd.OutOrStdout(),
				Sink:   notify.NewPrinter(),
				Logger: e.logger,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
