package options

import (
	"github.com/spf13/cobra"
)

// ListOptions
type ListOptions struct {
	ShowID    bool
	Available bool
}

func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each product.")
	cmd.Flags().BoolVarP(&o.Available, "available", "a", false,
		"Only list products marked disponivel.")
}
