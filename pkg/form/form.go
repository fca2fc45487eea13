// Package form models the product entry form: named fields, input masks,
// required-field validation and multipart encoding.
package form

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
)

// Kind is the input kind of a field.
type Kind int

const (
	Text Kind = iota
	Money
	Choice
	File
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Money:
		return "money"
	case Choice:
		return "choice"
	case File:
		return "file"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// RequiredMessage is reported for empty required fields.
const RequiredMessage = "Este campo é obrigatório"

// Field describes one input.
type Field struct {
	Name     string
	Label    string
	Kind     Kind
	Required bool
	// Options lists the accepted values of a Choice field. The first one is
	// the default.
	Options []string
}

// Errors maps field names to validation messages.
type Errors map[string]string

func (e Errors) Error() string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e[name])
	}
	return "form: " + strings.Join(parts, "; ")
}

// Form holds field values. It is safe for concurrent use: the debounced
// draft save reads it from a timer goroutine.
type Form struct {
	fields []Field

	mu     sync.Mutex
	values map[string]string
	errs   Errors
}

// New builds a form from fields, in display order.
func New(fields ...Field) *Form {
	f := &Form{fields: slices.Clone(fields)}
	f.Reset()
	return f
}

// Fields returns the field definitions in display order.
func (f *Form) Fields() []Field {
	return slices.Clone(f.fields)
}

// Field looks up a field definition by name.
func (f *Form) Field(name string) (Field, bool) {
	for _, fd := range f.fields {
		if fd.Name == name {
			return fd, true
		}
	}
	return Field{}, false
}

// Names lists the field names in display order.
func (f *Form) Names() []string {
	names := make([]string, len(f.fields))
	for i, fd := range f.fields {
		names[i] = fd.Name
	}
	return names
}

// Has reports whether the form has a field called name.
func (f *Form) Has(name string) bool {
	_, ok := f.Field(name)
	return ok
}

// Value returns the current value of name.
func (f *Form) Value(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[name]
}

// Set assigns value to a non-file field, applying its mask. Setting a field
// clears its validation error. It reports false for unknown fields, file
// fields and values outside a choice's options.
func (f *Form) Set(name, value string) bool {
	fd, ok := f.Field(name)
	if !ok || fd.Kind == File {
		return false
	}
	switch fd.Kind {
	case Money:
		value = MaskMoney(value)
	case Choice:
		if value != "" && !slices.Contains(fd.Options, value) {
			return false
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[name] = value
	delete(f.errs, name)
	return true
}

// SetFile attaches a local file path to a file field.
func (f *Form) SetFile(name, path string) bool {
	fd, ok := f.Field(name)
	if !ok || fd.Kind != File {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[name] = path
	delete(f.errs, name)
	return true
}

// Values returns the values of every non-file field, empty ones included.
func (f *Form) Values() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.fields))
	for _, fd := range f.fields {
		if fd.Kind == File {
			continue
		}
		out[fd.Name] = f.values[fd.Name]
	}
	return out
}

// Files returns the attached file paths by field name.
func (f *Form) Files() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string)
	for _, fd := range f.fields {
		if fd.Kind != File {
			continue
		}
		if p := f.values[fd.Name]; p != "" {
			out[fd.Name] = p
		}
	}
	return out
}

// Reset restores every field to its default: empty, or the first option of a
// choice.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = make(map[string]string, len(f.fields))
	for _, fd := range f.fields {
		if fd.Kind == Choice && len(fd.Options) > 0 {
			f.values[fd.Name] = fd.Options[0]
		}
	}
	f.errs = nil
}

// Validate checks every required field and records the failures. It returns
// nil when the form is valid.
func (f *Form) Validate() Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = nil
	for _, fd := range f.fields {
		if msg := f.check(fd); msg != "" {
			if f.errs == nil {
				f.errs = make(Errors)
			}
			f.errs[fd.Name] = msg
		}
	}
	return f.copyErrs()
}

// ValidateField checks a single field, the way leaving an input does, and
// returns its message or "".
func (f *Form) ValidateField(name string) string {
	fd, ok := f.Field(name)
	if !ok {
		return ""
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	msg := f.check(fd)
	if msg == "" {
		delete(f.errs, name)
		return ""
	}
	if f.errs == nil {
		f.errs = make(Errors)
	}
	f.errs[name] = msg
	return msg
}

// Errors returns a copy of the recorded validation errors.
func (f *Form) Errors() Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.copyErrs()
}

func (f *Form) copyErrs() Errors {
	if len(f.errs) == 0 {
		return nil
	}
	out := make(Errors, len(f.errs))
	for k, v := range f.errs {
		out[k] = v
	}
	return out
}

// Error returns the recorded message for name.
func (f *Form) Error(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs[name]
}

// check must be called with mu held.
func (f *Form) check(fd Field) string {
	if fd.Required && strings.TrimSpace(f.values[fd.Name]) == "" {
		return RequiredMessage
	}
	return ""
}
