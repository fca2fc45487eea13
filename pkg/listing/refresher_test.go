package listing

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/catalog/pkg/events"
	"tableflip.dev/catalog/pkg/notify"
	"tableflip.dev/catalog/pkg/product"
)

// gatedLister answers each List call with the next queued response, once
// that call's gate is opened.
type gatedLister struct {
	mu      sync.Mutex
	calls   int
	gates   []chan struct{}
	answers [][]product.Product
	err     error
	started chan int
}

func (l *gatedLister) List(ctx context.Context) ([]product.Product, error) {
	l.mu.Lock()
	i := l.calls
	l.calls++
	var gate chan struct{}
	if i < len(l.gates) {
		gate = l.gates[i]
	}
	l.mu.Unlock()

	if l.started != nil {
		l.started <- i
	}
	if gate != nil {
		<-gate
	}
	if l.err != nil {
		return nil, l.err
	}
	return l.answers[i], nil
}

type renders struct {
	mu   sync.Mutex
	rows [][]product.Row
}

func (r *renders) Render(rows []product.Row) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, rows)
}

func TestRefreshRenders(t *testing.T) {
	l := &gatedLister{answers: [][]product.Product{{{ID: "1", Name: "Caneta", Price: 19.9}}}}
	r := &renders{}
	rf := New(l, r)

	applied, err := rf.Refresh(context.Background())
	if err != nil || !applied {
		t.Fatalf("Refresh = %v, %v", applied, err)
	}
	want := [][]product.Row{{{ID: "1", Name: "Caneta", Price: "R$ 19,90", Actions: product.Actions}}}
	if diff := cmp.Diff(want, r.rows); diff != "" {
		t.Fatalf("rendered (-want +got):\n%s", diff)
	}
}

func TestStaleResponseDropped(t *testing.T) {
	l := &gatedLister{
		gates:   []chan struct{}{make(chan struct{}), make(chan struct{})},
		answers: [][]product.Product{{{ID: "old"}}, {{ID: "new"}}},
		started: make(chan int, 2),
	}
	r := &renders{}
	rf := New(l, r)

	first := make(chan bool)
	go func() {
		applied, _ := rf.Refresh(context.Background())
		first <- applied
	}()
	<-l.started

	second := make(chan bool)
	go func() {
		applied, _ := rf.Refresh(context.Background())
		second <- applied
	}()
	<-l.started

	// The newer request answers first.
	close(l.gates[1])
	if !<-second {
		t.Fatal("newer response not applied")
	}
	close(l.gates[0])
	if <-first {
		t.Fatal("stale response applied")
	}

	if len(r.rows) != 1 || r.rows[0][0].ID != "new" {
		t.Fatalf("rendered = %+v", r.rows)
	}
	if got := rf.Products(); len(got) != 1 || got[0].ID != "new" {
		t.Fatalf("Products = %+v", got)
	}
}

func TestRefreshFailure(t *testing.T) {
	var notes []notify.Notification
	sink := notify.SinkFunc(func(n notify.Notification) { notes = append(notes, n) })
	r := &renders{}
	rf := New(&gatedLister{err: errors.New("down")}, r, WithSink(sink))

	if _, err := rf.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(r.rows) != 0 {
		t.Fatal("rendered on failure")
	}
	if len(notes) != 1 || notes[0].Message != notify.MsgListFailed {
		t.Fatalf("notifications = %+v", notes)
	}
}

func TestAttach(t *testing.T) {
	l := &gatedLister{answers: [][]product.Product{{{ID: "1"}}, {{ID: "1"}, {ID: "2"}}}}
	r := &renders{}
	rf := New(l, r)

	var bus events.Bus
	detach := rf.Attach(context.Background(), &bus)

	bus.Publish(events.Event{Kind: events.Submitted, ID: "1"})
	bus.Publish(events.Event{Kind: events.Deleted, ID: "2"})
	detach()
	bus.Publish(events.Event{Kind: events.Updated, ID: "1"})

	if len(r.rows) != 2 {
		t.Fatalf("expected 2 refreshes, got %d", len(r.rows))
	}
	if len(r.rows[1]) != 2 {
		t.Fatalf("second render = %+v", r.rows[1])
	}
}
