package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/costguard/costguard/pkg/models/domain"
)

// Reporter outputs usage records to the console in a formatted text form
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(usage domain.ServiceUsage) error {
	tmpl := `
{{.Name}} ({{.Service}})
{{range .Dimensions}}
=== {{.Dimension}} ===
{{if .Failed}}fetch failed: {{.Message}}
{{else}}Usage: {{printf "%.0f" .Usage}} {{.Unit}}
Committed: {{printf "%.0f" .Committed}} {{.Unit}}
Projected month-end: {{printf "%.0f" .Projected}} {{.Unit}}
Utilization: {{.Utilization}}% ({{.Status}})
Month: day {{.DaysElapsed}}, {{.DaysRemaining}} days remaining
{{end}}{{end}}
`
	t, err := template.New("usage").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, usage)
}
