package commands

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"tableflip.dev/catalog/pkg/commands/options"
	"tableflip.dev/catalog/pkg/runner/serve"
)

func addServe(topLevel *cobra.Command) {
	so := &options.ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog HTTP server",
		Example: `
catalog serve
catalog serve --addr :8080 --db ./catalog.db
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(false)
			if err != nil {
				return err
			}
			defer e.close()

			s := serve.Serve{
				Addr:   e.cfg.ServeAddr(),
				DBPath: e.cfg.DBPath(),
				Logger: e.logger,
				Ready: func(a net.Addr) {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "catalog server listening on http://%s\n", a)
				},
			}
			if so.Addr != "" {
				s.Addr = so.Addr
			}
			if so.DB != "" {
				s.DBPath = so.DB
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddServeArgs(cmd, so)
	topLevel.AddCommand(cmd)
}
