package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/withoutfanfare/developer-test/internal/app"
	"github.com/withoutfanfare/developer-test/internal/domain"
	"github.com/withoutfanfare/developer-test/internal/report"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

type reportFlags struct {
	start   string
	end     string
	user    string
	format  string
	refresh bool
}

func reportCmd() *cobra.Command {
	var f reportFlags
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a task report",
		Long: `Generate the task report for a day window. Without --start and --end the
configured default window ending today is used. Results go through the
report cache unless --refresh is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.format != formatTable && f.format != formatJSON {
				return fmt.Errorf("unknown format %q (expected table or json)", f.format)
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				req, err := f.request(time.Now(), a.Config.Report.DefaultWindowDays)
				if err != nil {
					return err
				}

				var rep *report.TaskReport
				if f.refresh {
					rep, err = a.Reports.RefreshReport(ctx, req)
				} else {
					rep, err = a.Reports.GetReport(ctx, req)
				}
				if err != nil {
					return err
				}

				if f.format == formatJSON {
					return printJSON(cmd.OutOrStdout(), rep)
				}
				renderReport(cmd.OutOrStdout(), rep)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&f.start, "start", "", "first day of the window (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "last day of the window (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.user, "user", "", "owner name substring filter")
	cmd.Flags().StringVar(&f.format, "format", formatTable, "output format: table or json")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "bypass the cache and overwrite its entry")
	return cmd
}

// request resolves the flags into a report request. Missing bounds fall
// back to the default window.
func (f reportFlags) request(now time.Time, windowDays int) (domain.ReportRequest, error) {
	def := domain.DefaultReportRequest(now, windowDays)
	start, end := def.StartDate(), def.EndDate()
	if f.start != "" {
		start = f.start
	}
	if f.end != "" {
		end = f.end
	}
	return domain.ParseReportRequest(start, end, f.user)
}

func renderReport(out io.Writer, rep *report.TaskReport) {
	tasks := table.NewWriter()
	tasks.SetOutputMirror(out)
	tasks.SetTitle(fmt.Sprintf("Tasks %s to %s", rep.DateRange.Start, rep.DateRange.End))
	tasks.AppendHeader(table.Row{"ID", "Title", "Status", "Priority", "Category", "Owner", "Assignee", "Comments", "Est. h", "Actual h"})
	for _, r := range rep.Report {
		tasks.AppendRow(table.Row{
			r.TaskID,
			r.Title,
			r.Status,
			r.Priority,
			deref(r.Category),
			r.OwnerName,
			deref(r.AssigneeName),
			r.CommentCount,
			hours(r.EstimatedHours),
			hours(r.ActualHours),
		})
	}
	tasks.AppendFooter(table.Row{"", "TOTAL", rep.TotalTasks})
	tasks.Render()

	renderCounts(out, "Status", rep.StatusDistribution)
	renderCounts(out, "Priority", rep.PriorityDistribution)

	categories := table.NewWriter()
	categories.SetOutputMirror(out)
	categories.AppendHeader(table.Row{"Category", "Tasks", "Avg actual h"})
	for _, name := range sortedKeys(rep.CategoryStats) {
		s := rep.CategoryStats[name]
		categories.AppendRow(table.Row{name, s.Count, s.AvgHours})
	}
	categories.Render()

	filter := "all"
	if rep.UserFilter != nil {
		filter = strconv.Quote(*rep.UserFilter)
	}
	fmt.Fprintf(out, "user filter: %s  cached: %t  generated: %s\n",
		filter, rep.Cached, rep.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(out, "execution: %.2f ms  queries: %d  memory: %.2f MB  peak: %.2f MB\n",
		rep.ExecutionTimeMS, rep.QueryCount, rep.MemoryUsedMB, rep.PeakMemoryMB)
}

func renderCounts(out io.Writer, title string, counts map[string]int64) {
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.AppendHeader(table.Row{title, "Count"})
	for _, k := range sortedKeys(counts) {
		tw.AppendRow(table.Row{k, counts[k]})
	}
	tw.Render()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func hours(h *float64) string {
	if h == nil {
		return ""
	}
	return strconv.FormatFloat(*h, 'f', 2, 64)
}
