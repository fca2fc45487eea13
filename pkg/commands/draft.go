package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/catalog/pkg/commands/options"
	"tableflip.dev/catalog/pkg/runner/draft"
)

func addDraft(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Inspect the autosaved form draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addDraftShow(cmd)
	addDraftClear(cmd)
	topLevel.AddCommand(cmd)
}

func addDraftShow(topLevel *cobra.Command) {
	fo := &options.FollowOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the draft",
		Example: `
catalog draft show
catalog draft show --follow
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(true)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.close()

			s := draft.Show{
				Store:  e.drafts(),
				Key:    e.cfg.DraftKey(),
				Follow: fo.Follow,
				JSON:   output.JSON,
				Out:    cmd.OutOrStdout(),
				Logger: e.logger,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddFollowArgs(cmd, fo)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addDraftClear(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Erase the draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(true)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.close()

			c := draft.Clear{Store: e.drafts(), Key: e.cfg.DraftKey()}
			return output.HandleError(c.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
