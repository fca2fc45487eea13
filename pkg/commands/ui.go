package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/catalog/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the terminal catalog",
		Example: `
catalog ui
catalog ui --server http://catalog.local:5000
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(true)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.close()

			i := ui.UI{
				Client:     e.client(),
				Drafts:     e.drafts(),
				DraftKey:   e.cfg.DraftKey(),
				Debounce:   e.cfg.Debounce(),
				Toast:      e.cfg.ToastDuration(),
				ClearDraft: e.cfg.ClearDraftOnSubmit(),
				ImageBase:  e.serverURL(),
				Logger:     e.logger,
			}
			return output.HandleError(i.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
