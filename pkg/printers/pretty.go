package printers

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/catalog/pkg/product"
)

type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	pp.titleCount(title, count, "produto", "produtos")
}

func (pp *PrettyPrint) titleCount(title string, count int, one, many string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " "+one)
	default:
		_, _ = c.Fprintln(pp.out(), " "+many)
	}
}

// Products renders the product table, one row per product.
func (pp *PrettyPrint) Products(products ...product.Product) {
	if len(products) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " nenhum produto\n\n")
		return
	}

	bold := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	off := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	header := []any{bold.Sprint("Nome"), bold.Sprint("Valor"), bold.Sprint("Disponível")}
	if pp.ShowID {
		header = append([]any{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)

	rows := product.Rows(products)
	for i, row := range rows {
		avail := "sim"
		if !products[i].Available {
			avail = off.Sprint("não")
		}
		cells := []any{row.Name, row.Price, avail}
		if pp.ShowID {
			cells = append([]any{y.Sprint(row.ID)}, cells...)
		}
		tbl.AddRow(cells...)
	}
	if pp.ShowID {
		tbl.RightAlign(2)
	} else {
		tbl.RightAlign(1)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Product renders one product as a detail card.
func (pp *PrettyPrint) Product(p product.Product) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	pp.Title(p.Name)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(faint.Sprint("id"), p.ID)
	tbl.AddRow(faint.Sprint("valor"), bold.Sprint(product.FormatBRL(p.Price)))
	tbl.AddRow(faint.Sprint("disponível"), availableText(p.Available))
	if p.ImageURL != "" {
		tbl.AddRow(faint.Sprint("imagem"), p.ImageURL)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)

	if d := strings.TrimSpace(p.Description); d != "" {
		pp.NewLine()
		_, _ = fmt.Fprintln(pp.out(), wordwrap.String(d, 72))
	}
	pp.NewLine()
}

// Draft renders a stored form draft.
func (pp *PrettyPrint) Draft(key string, values map[string]string) {
	if len(values) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintf(pp.out(), " nenhum rascunho em %q\n", key)
		return
	}
	pp.titleCount("Rascunho "+key, len(values), "campo", "campos")
	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	sort.Strings(names)

	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	for _, k := range names {
		v := values[k]
		if v == "" {
			v = faint.Sprint("—")
		}
		tbl.AddRow(faint.Sprint(k), v)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

func availableText(ok bool) string {
	if ok {
		return color.New(color.FgGreen).Sprint("sim")
	}
	return color.New(color.FgRed).Sprint("não")
}
