package submit

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/catalog/pkg/events"
	"tableflip.dev/catalog/pkg/form"
	"tableflip.dev/catalog/pkg/notify"
	"tableflip.dev/catalog/pkg/product"
)

type fakeRemover struct {
	err   error
	calls []string
}

func (r *fakeRemover) Delete(_ context.Context, id string) error {
	r.calls = append(r.calls, id)
	return r.err
}

func answer(yes bool) Confirmer {
	return ConfirmFunc(func(_ context.Context, prompt string) (bool, error) {
		if prompt != notify.MsgConfirm {
			return false, errors.New("unexpected prompt " + prompt)
		}
		return yes, nil
	})
}

func TestDeleteConfirmed(t *testing.T) {
	rec := &recorder{}
	r := &fakeRemover{}
	d := NewDeleter(r, Options{Sink: rec, Bus: rec})

	res := d.Delete(context.Background(), "42", answer(true))
	if !res.OK {
		t.Fatalf("result = %+v", res)
	}
	if diff := cmp.Diff([]string{"42"}, r.calls); diff != "" {
		t.Fatalf("delete calls (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"success: " + notify.MsgDeleted}, rec.messages()); diff != "" {
		t.Fatalf("notifications (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]events.Event{{Kind: events.Deleted, ID: "42"}}, rec.evs); diff != "" {
		t.Fatalf("events (-want +got):\n%s", diff)
	}
}

func TestDeleteDeclined(t *testing.T) {
	rec := &recorder{}
	r := &fakeRemover{}
	d := NewDeleter(r, Options{Sink: rec, Bus: rec})

	res := d.Delete(context.Background(), "42", answer(false))
	if res.OK || res.Err != nil {
		t.Fatalf("result = %+v", res)
	}
	if len(r.calls) != 0 || len(rec.notes) != 0 || len(rec.evs) != 0 {
		t.Fatalf("declined delete had effects: calls=%v notes=%v events=%v", r.calls, rec.notes, rec.evs)
	}
}

func TestDeleteFailure(t *testing.T) {
	rec := &recorder{}
	r := &fakeRemover{err: errors.New("404")}
	d := NewDeleter(r, Options{Sink: rec, Bus: rec})

	res := d.Delete(context.Background(), "42", AlwaysConfirm)
	if res.OK || res.Err == nil {
		t.Fatalf("result = %+v", res)
	}
	if diff := cmp.Diff([]string{"error: " + notify.MsgDeleteFailed}, rec.messages()); diff != "" {
		t.Fatalf("notifications (-want +got):\n%s", diff)
	}
	if len(rec.evs) != 0 {
		t.Fatalf("list refresh requested after failure: %v", rec.evs)
	}
}

func TestDeleteConfirmError(t *testing.T) {
	r := &fakeRemover{}
	d := NewDeleter(r, Options{})
	boom := errors.New("no tty")
	res := d.Delete(context.Background(), "42", ConfirmFunc(func(context.Context, string) (bool, error) { return false, boom }))
	if !errors.Is(res.Err, boom) || len(r.calls) != 0 {
		t.Fatalf("result = %+v, calls = %v", res, r.calls)
	}
}

type fakeLoader struct {
	products map[string]product.Product
}

func (l fakeLoader) Get(_ context.Context, id string) (*product.Product, error) {
	p, ok := l.products[id]
	if !ok {
		return nil, errors.New("404")
	}
	return &p, nil
}

func TestView(t *testing.T) {
	loader := fakeLoader{products: map[string]product.Product{"42": {ID: "42", Name: "Caneta", Price: 19.9}}}
	rec := &recorder{}
	var shown []product.Product
	v := NewViewer(loader, PresenterFunc(func(p product.Product) { shown = append(shown, p) }), nil, nil, Options{Sink: rec})

	if res := v.View(context.Background(), "42"); !res.OK || res.Product.Name != "Caneta" {
		t.Fatalf("result = %+v", res)
	}
	if len(shown) != 1 || shown[0].ID != "42" {
		t.Fatalf("presented = %v", shown)
	}

	if res := v.View(context.Background(), "nope"); res.OK {
		t.Fatal("view of missing product succeeded")
	}
	if diff := cmp.Diff([]string{"error: " + notify.MsgLoadFailed}, rec.messages()); diff != "" {
		t.Fatalf("notifications (-want +got):\n%s", diff)
	}
}

func TestEdit(t *testing.T) {
	loader := fakeLoader{products: map[string]product.Product{
		"42": {ID: "42", Name: "Caneta", Description: "azul", Price: 19.9, Available: false},
	}}
	m := &modal{}
	f := form.ProductForm()
	f.Set(form.FieldName, "rascunho")
	c := New(f, &fakeSender{}, Options{Modal: m})
	v := NewViewer(loader, nil, f, c, Options{})

	if res := v.Edit(context.Background(), "42"); !res.OK {
		t.Fatalf("result = %+v", res)
	}
	want := map[string]string{
		form.FieldName: "Caneta", form.FieldDesc: "azul", form.FieldPrice: "19.90", form.FieldAvailable: form.No,
	}
	if diff := cmp.Diff(want, f.Values()); diff != "" {
		t.Fatalf("form (-want +got):\n%s", diff)
	}
	if id, ok := c.Editing(); !ok || id != "42" {
		t.Fatalf("Editing = %q, %v", id, ok)
	}
	if !m.open {
		t.Fatal("modal not opened")
	}
}
