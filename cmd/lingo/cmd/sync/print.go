package sync

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/agentstation/lingo/internal/cmd/output"
	"github.com/agentstation/lingo/pkg/batch"
)

// printReport writes the report in the requested format to stdout. Table
// output is followed by colored status lines on stderr.
func printReport(stdout, stderr io.Writer, format string, report *batch.Report) error {
	outputFormat := output.DetectFormat(format)
	if _, err := output.ParseFormat(string(outputFormat)); err != nil {
		return err
	}

	switch outputFormat {
	case output.FormatJSON, output.FormatYAML:
		return output.NewFormatter(outputFormat).Format(stdout, report)
	default:
		if len(report.Targets) > 0 {
			data := output.ReportToTableData(report, outputFormat == output.FormatWide)
			if err := output.NewFormatter(outputFormat).Format(stdout, data); err != nil {
				return err
			}
		}
		displayStatus(stderr, report)
		return nil
	}
}

// displayStatus shows one colored line per target plus the batch summary.
func displayStatus(w io.Writer, report *batch.Report) {
	for _, t := range report.Targets {
		fmt.Fprintf(w, "%s %s\n", statusMark(t), t.Summary())
		for _, m := range t.Mismatches {
			fmt.Fprintf(w, "    %s %s\n", color.RedString("!"), m)
		}
	}

	summary := report.Summary()
	switch {
	case report.DryRun:
		fmt.Fprintf(w, "\n%s\n", color.YellowString(summary))
	case report.Totals().Mismatches > 0:
		fmt.Fprintf(w, "\n%s\n", color.YellowString(summary))
	default:
		fmt.Fprintf(w, "\n%s in %s\n", color.GreenString(summary), report.Duration().Round(time.Millisecond))
	}
}

func statusMark(t batch.TargetReport) string {
	switch {
	case t.Stats.Mismatches > 0:
		return color.RedString("✗")
	case t.Stats.FellBack > 0:
		return color.YellowString("~")
	default:
		return color.GreenString("✓")
	}
}
