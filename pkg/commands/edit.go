package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/catalog/pkg/commands/options"
	"tableflip.dev/catalog/pkg/notify"
	"tableflip.dev/catalog/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	po := &options.ProductOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a product",
		Example: `
catalog edit 3f2b9c1e --valor 24,90
catalog edit 3f2b9c1e --disponivel=false
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(true)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.close()

			values, err := po.Values()
			if err != nil {
				return output.HandleError(err)
			}
			ed := edit.Edit{
				Client: e.client(),
				ID:     args[0],
				Values: values,
				Image:  po.Image,
				Out:    cmd.OutOrStdout(),
				Sink:   notify.NewPrinter(),
				Logger: e.logger,
			}
			return output.HandleError(ed.Do(cmd.Context()))
		},
	}

	options.AddProductArgs(cmd, po)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
