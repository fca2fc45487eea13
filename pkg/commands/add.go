package commands

import (
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/catalog/pkg/commands/options"
	"tableflip.dev/catalog/pkg/notify"
	"tableflip.dev/catalog/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	po := &options.ProductOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		Long: base.Wrap80(`Add a product through the product form. Required fields are
nome, valor and disponivel. With --from-draft the form starts from the draft
autosaved by "catalog ui"; flags override the draft's fields.`),
		Example: `
catalog add --nome "Caneca" --valor 19,90
catalog add --nome "Camiseta" --valor 59.9 --disponivel=false --imagem ./camiseta.png
catalog add --from-draft
`,
		Args: cobra.NoArgs,
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
			a := add.Add{
				Client:     e.client(),
				Values:     values,
				Image:      po.Image,
				Drafts:     e.drafts(),
				DraftKey:   e.cfg.DraftKey(),
				FromDraft:  po.FromDraft,
				ClearDraft: po.FromDraft || e.cfg.ClearDraftOnSubmit(),
				Out:        cmd.OutOrStdout(),
				Sink:       notify.NewPrinter(),
				Logger:     e.logger,
			}
			return output.HandleError(a.Do(cmd.Context()))
		},
	}

	options.AddProductArgs(cmd, po)
	options.AddFromDraftArg(cmd, po)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
