package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config exposes the settings shared by the catalog client, the TUI and the
// catalog server.
type Config interface {
	// BasePath is the directory holding local drafts and logs.
	BasePath() string
	ServerURL() string
	Timeout() time.Duration
	Debounce() time.Duration
	ToastDuration() time.Duration
	DraftKey() string
	ClearDraftOnSubmit() bool
	ServeAddr() string
	DBPath() string
	LogLevel() string
	LogFile() string
}

const (
	// DefaultDraftKey is the key the form draft is stored under.
	DefaultDraftKey = "formState"
	// DefaultServerURL is where `catalog serve` listens by default.
	DefaultServerURL = "http://127.0.0.1:5000"
)

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("path", "~/.catalog")
	v.SetDefault("server", DefaultServerURL)
	v.SetDefault("timeout", 10*time.Second)
	v.SetDefault("debounce", time.Second)
	v.SetDefault("toast", 3*time.Second)
	v.SetDefault("draft.key", DefaultDraftKey)
	v.SetDefault("draft.clear_on_submit", false)
	v.SetDefault("serve.addr", "127.0.0.1:5000")
	v.SetDefault("serve.db", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetConfigName(".catalog") // .yaml is implicit
	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads .catalog.yaml from $CATALOG_CONFIG_PATH or the working
// directory, then applies CATALOG_* environment overrides. A missing config
// file is not an error.
func LoadConfig() (Config, error) {
	v := newViper()

	if override := os.Getenv("CATALOG_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return configFrom(v)
}

func configFrom(v *viper.Viper) (*fileConfig, error) {
	base, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, err
	}
	dbPath := v.GetString("serve.db")
	if dbPath == "" {
		dbPath = filepath.Join(base, "catalog.db")
	}
	if dbPath, err = homedir.Expand(dbPath); err != nil {
		return nil, err
	}
	logFile := v.GetString("log.file")
	if logFile == "" {
		logFile = filepath.Join(base, "catalog.log")
	}
	if logFile, err = homedir.Expand(logFile); err != nil {
		return nil, err
	}

	return &fileConfig{
		Path:         base,
		Server:       strings.TrimRight(v.GetString("server"), "/"),
		RequestLimit: v.GetDuration("timeout"),
		DebounceFor:  v.GetDuration("debounce"),
		ToastFor:     v.GetDuration("toast"),
		Key:          v.GetString("draft.key"),
		ClearDraft:   v.GetBool("draft.clear_on_submit"),
		Addr:         v.GetString("serve.addr"),
		DB:           dbPath,
		Level:        v.GetString("log.level"),
		File:         logFile,
	}, nil
}

type fileConfig struct {
	Path         string        `json:"path"`
	Server       string        `json:"server"`
	RequestLimit time.Duration `json:"timeout"`
	DebounceFor  time.Duration `json:"debounce"`
	ToastFor     time.Duration `json:"toast"`
	Key          string        `json:"draftKey"`
	ClearDraft   bool          `json:"clearDraftOnSubmit"`
	Addr         string        `json:"serveAddr"`
	DB           string        `json:"db"`
	Level        string        `json:"logLevel"`
	File         string        `json:"logFile"`
}

func (f *fileConfig) BasePath() string             { return f.Path }
func (f *fileConfig) ServerURL() string            { return f.Server }
func (f *fileConfig) Timeout() time.Duration       { return f.RequestLimit }
func (f *fileConfig) Debounce() time.Duration      { return f.DebounceFor }
func (f *fileConfig) ToastDuration() time.Duration { return f.ToastFor }
func (f *fileConfig) ClearDraftOnSubmit() bool     { return f.ClearDraft }
func (f *fileConfig) ServeAddr() string            { return f.Addr }
func (f *fileConfig) DBPath() string               { return f.DB }
func (f *fileConfig) LogLevel() string             { return f.Level }
func (f *fileConfig) LogFile() string              { return f.File }

func (f *fileConfig) DraftKey() string {
	if f.Key == "" {
		return DefaultDraftKey
	}
	return f.Key
}
