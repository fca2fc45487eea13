package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

const tempDirName = ".tmp"

// KeyValueStore persists small JSON documents (form drafts) on local disk.
// None of its methods return errors: failures are classified, logged and
// reported as "no value".
type KeyValueStore interface {
	Set(key string, value any)
	Get(key string, target any) bool
	Erase(key string)
}

// KV is the diskv backed KeyValueStore.
type KV struct {
	d        *diskv.Diskv
	basePath string
	log      *slog.Logger
}

var _ KeyValueStore = (*KV)(nil)

// Open creates a KV rooted at basePath. The directory is created lazily on
// the first write.
func Open(basePath string, logger *slog.Logger) *KV {
	if logger == nil {
		logger = slog.Default()
	}
	return &KV{
		d: diskv.New(diskv.Options{
			BasePath: basePath,
			TempDir:  filepath.Join(basePath, tempDirName),
			// Another process may write the same key; reads always hit disk.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
		log:      logger.With("component", "store"),
	}
}

// Load opens the KV described by cfg, loading the configuration when cfg is
// nil.
func Load(cfg Config, logger *slog.Logger) (*KV, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return Open(cfg.BasePath(), logger), nil
}

// BasePath reports the directory backing the store.
func (s *KV) BasePath() string {
	return s.basePath
}

// Set encodes value as JSON and writes it under key.
func (s *KV) Set(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.report(&Error{Kind: KindEncode, Op: "set", Key: key, Err: err})
		return
	}
	if err := s.d.Write(key, data); err != nil {
		s.report(s.wrap("set", key, err))
	}
}

// Get decodes the value stored under key into target. It reports false when
// the key is absent or the stored bytes cannot be decoded.
func (s *KV) Get(key string, target any) bool {
	data, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false
		}
		s.report(s.wrap("get", key, err))
		return false
	}
	if len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, target); err != nil {
		s.report(&Error{Kind: KindParse, Op: "get", Key: key, Err: err})
		return false
	}
	return true
}

// Has reports whether a value is stored under key.
func (s *KV) Has(key string) bool {
	return s.d.Has(key)
}

// Erase removes key. Missing keys are ignored.
func (s *KV) Erase(key string) {
	if err := s.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.report(s.wrap("erase", key, err))
	}
}

// Raw returns the stored bytes for key, or nil.
func (s *KV) Raw(key string) []byte {
	data, err := s.d.Read(key)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.report(s.wrap("raw", key, err))
		}
		return nil
	}
	return data
}

func (s *KV) wrap(op, key string, err error) *Error {
	kind := Classify(err)
	if kind == KindNotFound {
		// The base path itself is missing and could not be created.
		if _, statErr := os.Stat(s.basePath); statErr != nil {
			kind = KindUnavailable
		}
	}
	return &Error{Kind: kind, Op: op, Key: key, Err: err}
}

func (s *KV) report(err *Error) {
	s.log.Warn("store operation failed",
		"op", err.Op,
		"key", err.Key,
		"kind", string(err.Kind),
		"error", err.Err,
	)
}
