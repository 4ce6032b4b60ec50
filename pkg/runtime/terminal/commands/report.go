package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/costguard/costguard/pkg/models/domain"
	"github.com/costguard/costguard/pkg/services/report"
	"github.com/spf13/cobra"
)

// Handler renders a finished usage record.
type Handler interface {
	Handle(usage domain.ServiceUsage) error
}

type ReportCmd struct {
	service string
	asTable bool
	reports report.Controller
	text    Handler
	table   Handler
}

func NewReportCmd(reports report.Controller, text, table Handler) *cobra.Command {
	rc := &ReportCmd{reports: reports, text: text, table: table}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report month-to-date usage for a service",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.service, "service", "", "Service to report (e.g. logs, infrastructure)")
	cmd.Flags().BoolVar(&rc.asTable, "table", false, "Render as an aligned table")

	_ = cmd.MarkFlagRequired("service")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	usage, err := rc.reports.GetServiceUsage(ctx, rc.service)
	if err != nil {
		return fmt.Errorf("failed to build usage report for %q: %w", rc.service, err)
	}

	handler := rc.text
	if rc.asTable {
		handler = rc.table
	}
	return handler.Handle(usage)
}
