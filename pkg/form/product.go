package form

// Names of the product form fields.
const (
	FieldName      = "nome"
	FieldDesc      = "descricao"
	FieldPrice     = "valor"
	FieldAvailable = "disponivel"
	FieldImage     = "imagem"
)

// Choice values of the availability field.
const (
	Yes = "sim"
	No  = "nao"
)

// ProductForm returns the catalog entry form.
func ProductForm() *Form {
	return New(
		Field{Name: FieldName, Label: "Nome", Kind: Text, Required: true},
		Field{Name: FieldDesc, Label: "Descrição", Kind: Text},
		Field{Name: FieldPrice, Label: "Valor", Kind: Money, Required: true},
		Field{Name: FieldAvailable, Label: "Disponível", Kind: Choice, Required: true, Options: []string{Yes, No}},
		Field{Name: FieldImage, Label: "Imagem", Kind: File},
	)
}
