package form

import (
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMaskMoney(t *testing.T) {
	tests := map[string]string{
		"1990":     "19.90",
		"5":        "0.05",
		"":         "",
		"abc":      "",
		"R$ 19,90": "19.90",
		"19.90":    "19.90",
		"000":      "0.00",
		"123456":   "1234.56",
		"0012":     "0.12",
	}
	for in, want := range tests {
		if got := MaskMoney(in); got != want {
			t.Errorf("MaskMoney(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProductFormDefaults(t *testing.T) {
	f := ProductForm()

	want := []string{FieldName, FieldDesc, FieldPrice, FieldAvailable, FieldImage}
	if diff := cmp.Diff(want, f.Names()); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
	wantValues := map[string]string{
		FieldName: "", FieldDesc: "", FieldPrice: "", FieldAvailable: Yes,
	}
	if diff := cmp.Diff(wantValues, f.Values()); diff != "" {
		t.Fatalf("values (-want +got):\n%s", diff)
	}
}

func TestSet(t *testing.T) {
	f := ProductForm()

	if !f.Set(FieldPrice, "1990") {
		t.Fatal("Set valor failed")
	}
	if got := f.Value(FieldPrice); got != "19.90" {
		t.Fatalf("valor = %q, want masked 19.90", got)
	}
	if f.Set("unknown", "x") {
		t.Fatal("Set accepted an unknown field")
	}
	if f.Set(FieldImage, "/tmp/x.png") {
		t.Fatal("Set accepted a file field")
	}
	if f.Set(FieldAvailable, "talvez") {
		t.Fatal("Set accepted a value outside the choice options")
	}
	if !f.Set(FieldAvailable, No) {
		t.Fatal("Set rejected a valid choice")
	}
}

func TestFilesAreNotValues(t *testing.T) {
	f := ProductForm()
	if !f.SetFile(FieldImage, "/tmp/foto.png") {
		t.Fatal("SetFile failed")
	}
	if f.SetFile(FieldName, "/tmp/foto.png") {
		t.Fatal("SetFile accepted a text field")
	}
	if _, ok := f.Values()[FieldImage]; ok {
		t.Fatal("file field leaked into Values")
	}
	if diff := cmp.Diff(map[string]string{FieldImage: "/tmp/foto.png"}, f.Files()); diff != "" {
		t.Fatalf("files (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	f := ProductForm()

	errs := f.Validate()
	want := Errors{FieldName: RequiredMessage, FieldPrice: RequiredMessage}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("errors (-want +got):\n%s", diff)
	}

	// Typing into a field clears its error.
	f.Set(FieldName, "Caneta")
	if msg := f.Error(FieldName); msg != "" {
		t.Fatalf("error not cleared on input: %q", msg)
	}

	f.Set(FieldPrice, "   ")
	if errs := f.Validate(); len(errs) != 1 || errs[FieldPrice] != RequiredMessage {
		t.Fatalf("expected only valor to fail, got %v", errs)
	}

	f.Set(FieldPrice, "1990")
	if errs := f.Validate(); errs != nil {
		t.Fatalf("expected valid form, got %v", errs)
	}
}

func TestValidateField(t *testing.T) {
	f := ProductForm()
	if msg := f.ValidateField(FieldDesc); msg != "" {
		t.Fatalf("optional field reported %q", msg)
	}
	if msg := f.ValidateField(FieldName); msg != RequiredMessage {
		t.Fatalf("ValidateField(nome) = %q", msg)
	}
	f.Set(FieldName, "x")
	if msg := f.ValidateField(FieldName); msg != "" {
		t.Fatalf("ValidateField after input = %q", msg)
	}
	if f.Errors() != nil {
		t.Fatalf("errors left behind: %v", f.Errors())
	}
}

func TestErrorsMessage(t *testing.T) {
	err := Errors{FieldPrice: RequiredMessage, FieldName: RequiredMessage}
	want := "form: nome: Este campo é obrigatório; valor: Este campo é obrigatório"
	if got := err.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestReset(t *testing.T) {
	f := ProductForm()
	f.Set(FieldName, "Caneta")
	f.Set(FieldAvailable, No)
	f.SetFile(FieldImage, "/tmp/foto.png")
	f.Validate()
	f.Reset()

	if got := f.Value(FieldName); got != "" {
		t.Fatalf("nome after reset = %q", got)
	}
	if got := f.Value(FieldAvailable); got != Yes {
		t.Fatalf("disponivel after reset = %q", got)
	}
	if len(f.Files()) != 0 {
		t.Fatalf("files after reset = %v", f.Files())
	}
	if f.Errors() != nil {
		t.Fatalf("errors after reset = %v", f.Errors())
	}
}

func TestEncodeMultipart(t *testing.T) {
	img := filepath.Join(t.TempDir(), "foto.png")
	if err := os.WriteFile(img, []byte("png-bytes"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}

	body, ctype, err := EncodeMultipart(
		map[string]string{FieldName: "Caneta", FieldPrice: "19.90"},
		map[string]string{FieldImage: img},
	)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	mediaType, params, err := mime.ParseMediaType(ctype)
	if err != nil || mediaType != "multipart/form-data" {
		t.Fatalf("content type %q: %v", ctype, err)
	}
	r := multipart.NewReader(body, params["boundary"])
	got := map[string]string{}
	var filename string
	for {
		p, err := r.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("next part: %v", err)
		}
		data, _ := io.ReadAll(p)
		got[p.FormName()] = string(data)
		if p.FileName() != "" {
			filename = p.FileName()
		}
	}
	want := map[string]string{FieldName: "Caneta", FieldPrice: "19.90", FieldImage: "png-bytes"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("parts (-want +got):\n%s", diff)
	}
	if filename != "foto.png" {
		t.Fatalf("filename = %q", filename)
	}
}

func TestEncodeMultipartMissingFile(t *testing.T) {
	_, _, err := EncodeMultipart(nil, map[string]string{FieldImage: filepath.Join(t.TempDir(), "nope.png")})
	if err == nil || !strings.Contains(err.Error(), FieldImage) {
		t.Fatalf("expected error naming the field, got %v", err)
	}
}
