package product

// Action is a per-row control.
type Action string

const (
	ActionView   Action = "view"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Actions lists the controls of every row, in display order.
var Actions = []Action{ActionView, ActionEdit, ActionDelete}

// Row is one rendered line of the product table.
type Row struct {
	ID      string
	Name    string
	Price   string
	Actions []Action
}

// Rows renders products in the given order.
func Rows(products []Product) []Row {
	rows := make([]Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, Row{
			ID:      p.ID,
			Name:    p.Name,
			Price:   FormatBRL(p.Price),
			Actions: Actions,
		})
	}
	return rows
}
