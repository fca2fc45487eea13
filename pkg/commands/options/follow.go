package options

import (
	"github.com/spf13/cobra"
)

// FollowOptions
type FollowOptions struct {
	Follow bool
}

func AddFollowArgs(cmd *cobra.Command, o *FollowOptions) {
	cmd.Flags().BoolVarP(&o.Follow, "follow", "f", false,
		"Keep printing the draft as it changes.")
}
