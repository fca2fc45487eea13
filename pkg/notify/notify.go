// Package notify delivers transient user-visible feedback.
package notify

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Level is the severity of a notification.
type Level string

const (
	Success Level = "success"
	Error   Level = "error"
	Info    Level = "info"
)

// DefaultDuration is how long a notification stays visible.
const DefaultDuration = 3 * time.Second

// Messages shown by the catalog controllers.
const (
	MsgCreated      = "Produto cadastrado com sucesso!"
	MsgCreateFailed = "Erro ao cadastrar produto"
	MsgUpdated      = "Produto atualizado com sucesso!"
	MsgUpdateFailed = "Erro ao atualizar produto"
	MsgDeleted      = "Produto excluído com sucesso!"
	MsgDeleteFailed = "Erro ao excluir produto"
	MsgLoadFailed   = "Erro ao carregar produto"
	MsgListFailed   = "Erro ao carregar produtos"
	MsgInvalid      = "Preencha os campos obrigatórios"
	MsgConfirm      = "Tem certeza que deseja excluir este produto?"
	MsgRestored     = "Rascunho restaurado"
)

// Notification is one message.
type Notification struct {
	Level    Level
	Message  string
	Duration time.Duration
}

// New returns a notification with the default duration.
func New(level Level, msg string) Notification {
	return Notification{Level: level, Message: msg, Duration: DefaultDuration}
}

// Sink shows notifications.
type Sink interface {
	Notify(Notification)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Notification)

func (f SinkFunc) Notify(n Notification) { f(n) }

// Discard drops every notification.
var Discard Sink = SinkFunc(func(Notification) {})

// Printer writes notifications as colored lines, for the CLI.
type Printer struct {
	mu  sync.Mutex
	Out io.Writer
}

// NewPrinter prints to stderr through fatih/color so colors follow the
// terminal's capabilities.
func NewPrinter() *Printer {
	return &Printer{Out: color.Error}
}

var levelColor = map[Level]*color.Color{
	Success: color.New(color.FgGreen, color.Bold),
	Error:   color.New(color.FgRed, color.Bold),
	Info:    color.New(color.FgCyan),
}

var levelMark = map[Level]string{
	Success: "✓",
	Error:   "✗",
	Info:    "•",
}

func (p *Printer) Notify(n Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.Out
	if out == nil {
		out = os.Stderr
	}
	c, ok := levelColor[n.Level]
	if !ok {
		c = levelColor[Info]
	}
	mark := levelMark[n.Level]
	if mark == "" {
		mark = levelMark[Info]
	}
	_, _ = c.Fprint(out, mark)
	_, _ = fmt.Fprintf(out, " %s\n", n.Message)
}
