package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"syscall"
)

// Kind classifies storage failures for diagnostics. Callers of the
// KeyValueStore never see these; they are logged.
type Kind string

const (
	KindNotFound    Kind = "not-found"
	KindUnavailable Kind = "unavailable"
	KindQuota       Kind = "quota"
	KindEncode      Kind = "encode"
	KindParse       Kind = "parse"
	KindUnknown     Kind = "unknown"
)

// Error records a failed store operation.
type Error struct {
	Kind Kind
	Op   string
	Key  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store: %s %q (%s): %v", e.Op, e.Key, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Classify maps an error returned by the filesystem or the JSON codec to a
// Kind.
func Classify(err error) Kind {
	if err == nil {
		return ""
	}

	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return KindParse
	}
	var unsupportedType *json.UnsupportedTypeError
	var unsupportedValue *json.UnsupportedValueError
	var marshalerErr *json.MarshalerError
	if errors.As(err, &unsupportedType) || errors.As(err, &unsupportedValue) || errors.As(err, &marshalerErr) {
		return KindEncode
	}

	switch {
	case errors.Is(err, syscall.ENOSPC), errors.Is(err, syscall.EDQUOT):
		return KindQuota
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission), errors.Is(err, syscall.EROFS), errors.Is(err, syscall.ENOTDIR):
		return KindUnavailable
	}

	// diskv flattens write errors with %s, so the errno is only in the text.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, syscall.ENOSPC.Error()), strings.Contains(msg, syscall.EDQUOT.Error()):
		return KindQuota
	case strings.Contains(msg, syscall.EACCES.Error()), strings.Contains(msg, syscall.EROFS.Error()),
		strings.Contains(msg, syscall.ENOTDIR.Error()):
		return KindUnavailable
	}
	return KindUnknown
}
