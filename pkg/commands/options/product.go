package options

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/catalog/pkg/form"
)

// ProductOptions holds the product form fields given as flags.
type ProductOptions struct {
	Name        string
	Description string
	Price       string
	Available   bool
	Image       string
	FromDraft   bool

	cmd *cobra.Command
}

func AddProductArgs(cmd *cobra.Command, o *ProductOptions) {
	o.cmd = cmd
	cmd.Flags().StringVarP(&o.Name, "nome", "n", "",
		"Product name.")
	cmd.Flags().StringVarP(&o.Description, "descricao", "d", "",
		"Product description.")
	cmd.Flags().StringVarP(&o.Price, "valor", "v", "",
		`Price in reais, example: --valor=19,90.`)
	cmd.Flags().BoolVar(&o.Available, "disponivel", true,
		"Whether the product is available.")
	cmd.Flags().StringVar(&o.Image, "imagem", "",
		"Path of an image file to upload.")
}

func AddFromDraftArg(cmd *cobra.Command, o *ProductOptions) {
	cmd.Flags().BoolVar(&o.FromDraft, "from-draft", false,
		"Start from the autosaved form draft.")
}

// Values returns the form values for the flags that were set on the command
// line, keyed by form field name.
func (o *ProductOptions) Values() (map[string]string, error) {
	changed := func(name string) bool {
		return o.cmd == nil || o.cmd.Flags().Changed(name)
	}
	values := map[string]string{}
	if changed("nome") {
		values[form.FieldName] = strings.TrimSpace(o.Name)
	}
	if changed("descricao") {
		values[form.FieldDesc] = strings.TrimSpace(o.Description)
	}
	if changed("valor") && strings.TrimSpace(o.Price) != "" {
		price, err := ParsePrice(o.Price)
		if err != nil {
			return nil, err
		}
		values[form.FieldPrice] = price
	}
	if changed("disponivel") {
		values[form.FieldAvailable] = form.No
		if o.Available {
			values[form.FieldAvailable] = form.Yes
		}
	}
	return values, nil
}

// ParsePrice normalizes "19,9", "19.90" or "1.234,50" to the two decimal
// form the product form stores.
func ParsePrice(s string) (string, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", fmt.Errorf("invalid valor %q", s)
	}
	if v < 0 {
		return "", fmt.Errorf("valor must not be negative")
	}
	return fmt.Sprintf("%.2f", v), nil
}
