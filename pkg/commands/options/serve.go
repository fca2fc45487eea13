package options

import (
	"github.com/spf13/cobra"
)

// ServeOptions overrides the serve.* configuration.
type ServeOptions struct {
	Addr string
	DB   string
}

func AddServeArgs(cmd *cobra.Command, o *ServeOptions) {
	cmd.Flags().StringVar(&o.Addr, "addr", "",
		`Listen address, defaults to the "serve.addr" setting.`)
	cmd.Flags().StringVar(&o.DB, "db", "",
		`SQLite database path, defaults to the "serve.db" setting.`)
}
