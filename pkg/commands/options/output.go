package options

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/catalog/pkg/catalog"
	"tableflip.dev/catalog/pkg/form"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

type jsonError struct {
	Error  string            `json:"error"`
	Status int               `json:"status,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// HandleError prints err as a JSON object when --json is set and swallows
// it; otherwise err is returned for cobra to report.
func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		out := jsonError{Error: err.Error()}
		var fields form.Errors
		if errors.As(err, &fields) {
			out.Fields = fields
		}
		var status *catalog.StatusError
		if errors.As(err, &status) {
			out.Status = status.Code
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
