package options

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"tableflip.dev/catalog/pkg/form"
)

func TestParsePrice(t *testing.T) {
	tests := map[string]string{
		"19.9":        "19.90",
		"19,9":        "19.90",
		"R$ 1.234,50": "1234.50",
		"0":           "0.00",
		" 5 ":         "5.00",
	}
	for in, want := range tests {
		got, err := ParsePrice(in)
		if err != nil {
			t.Fatalf("ParsePrice(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParsePrice(%q) = %q, want %q", in, got, want)
		}
	}
	for _, bad := range []string{"abc", "-1", ""} {
		if _, err := ParsePrice(bad); err == nil {
			t.Fatalf("ParsePrice(%q) expected error", bad)
		}
	}
}

func TestProductValuesOnlyChangedFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	o := &ProductOptions{}
	AddProductArgs(cmd, o)
	if err := cmd.ParseFlags([]string{"--valor", "19,9", "--disponivel=false"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	got, err := o.Values()
	if err != nil {
		t.Fatalf("Values: %v", err)
	}
	want := map[string]string{
		form.FieldPrice:     "19.90",
		form.FieldAvailable: form.No,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Values (-want +got):\n%s", diff)
	}
}
