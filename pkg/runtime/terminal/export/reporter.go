package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/costguard/costguard/pkg/models/domain"
)

type TableConfig struct {
	DimensionWidth int
	ValueWidth     int
	UnitWidth      int
	StatusWidth    int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		DimensionWidth: 24,
		ValueWidth:     16,
		UnitWidth:      10,
		StatusWidth:    10,
	}
}

// Reporter renders a service usage record as an aligned table, one row
// per billing dimension.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(usage domain.ServiceUsage) error {
	funcMap := template.FuncMap{
		"formatRow": func(dimension string, used, committed, projected interface{}, unit string, status interface{}) string {
			return fmt.Sprintf("| %-*s | %-*v | %-*v | %-*v | %-*s | %-*v |",
				c.config.DimensionWidth, dimension,
				c.config.ValueWidth, used,
				c.config.ValueWidth, committed,
				c.config.ValueWidth, projected,
				c.config.UnitWidth, unit,
				c.config.StatusWidth, status)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.DimensionWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.UnitWidth+2),
				strings.Repeat("-", c.config.StatusWidth+2))
		},
		"num": func(v float64) string {
			return fmt.Sprintf("%.0f", v)
		},
	}

	tmpl := `
{{.Name}} ({{.Service}})

{{separator}}
{{formatRow "Dimension" "Usage" "Committed" "Projected" "Unit" "Status"}}
{{separator}}
{{range .Dimensions}}{{if .Failed}}{{formatRow .Dimension "-" "-" "-" .Unit .Message}}
{{else}}{{formatRow .Dimension (num .Usage) (num .Committed) (num .Projected) .Unit .Status}}
{{end}}{{end}}{{separator}}
`

	t, err := template.New("usage").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, usage)
}
