package draft

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/catalog/pkg/store"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestShowJSON(t *testing.T) {
	kv := store.Open(t.TempDir(), nil)
	kv.Set("formState", map[string]string{"nome": "Caneca", "valor": "19.90"})

	var out bytes.Buffer
	s := Show{Store: kv, Key: "formState", JSON: true, Out: &out}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	if got["nome"] != "Caneca" || got["valor"] != "19.90" {
		t.Fatalf("draft = %v", got)
	}
}

func TestShowMissingDraft(t *testing.T) {
	kv := store.Open(t.TempDir(), nil)
	var out bytes.Buffer
	s := Show{Store: kv, Key: "formState", JSON: true, Out: &out}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if strings.TrimSpace(out.String()) != "{}" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestClear(t *testing.T) {
	kv := store.Open(t.TempDir(), nil)
	kv.Set("formState", map[string]string{"nome": "Caneca"})

	c := Clear{Store: kv, Key: "formState"}
	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if kv.Has("formState") {
		t.Fatalf("draft still stored")
	}
}

func TestShowFollow(t *testing.T) {
	kv := store.Open(t.TempDir(), nil)
	kv.Set("formState", map[string]string{"nome": "Caneca"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		s := Show{Store: kv, Key: "formState", Follow: true, JSON: true, Out: out}
		done <- s.Do(ctx)
	}()

	waitFor(t, func() bool { return strings.Contains(out.String(), "Caneca") })
	kv.Set("formState", map[string]string{"nome": "Garrafa"})
	waitFor(t, func() bool { return strings.Contains(out.String(), "Garrafa") })

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Do: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("follow did not stop after cancel")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}
