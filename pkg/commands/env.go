package commands

import (
	"log/slog"
	"os"

	"tableflip.dev/catalog/pkg/catalog"
	"tableflip.dev/catalog/pkg/logging"
	"tableflip.dev/catalog/pkg/store"
)

// env is what a command needs from configuration.
type env struct {
	cfg    store.Config
	logger *slog.Logger
	close  func() error
}

// loadEnv reads the configuration. Terminal commands log to the configured
// log file; the server logs to stdout.
func loadEnv(logToFile bool) (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, close: func() error { return nil }}
	if logToFile {
		logger, closeFn, err := logging.OpenFile(cfg.LogFile(), cfg.LogLevel())
		if err != nil {
			return nil, err
		}
		e.logger, e.close = logger, closeFn
	} else {
		lvl, err := logging.ParseLevel(cfg.LogLevel())
		if err != nil {
			return nil, err
		}
		e.logger = logging.New(os.Stdout, lvl)
	}
	slog.SetDefault(e.logger)
	return e, nil
}

func (e *env) serverURL() string {
	if global.Server != "" {
		return global.Server
	}
	return e.cfg.ServerURL()
}

func (e *env) client() *catalog.Client {
	return catalog.New(e.serverURL(),
		catalog.WithTimeout(e.cfg.Timeout()),
		catalog.WithLogger(e.logger),
	)
}

func (e *env) drafts() *store.KV {
	return store.Open(e.cfg.BasePath(), e.logger)
}
