package output

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/agentstation/lingo/pkg/batch"
)

// LanguageName returns the English name of a language code, for example
// "French" for "fr". Unknown or empty codes are returned unchanged.
func LanguageName(code string) string {
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	name := display.English.Tags().Name(tag)
	if name == "" {
		return code
	}
	return name
}

// ReportToTableData converts a batch report to table rows, one per target.
// Wide tables add the backup path, the format and the content size.
func ReportToTableData(report *batch.Report, wide bool) Data {
	headers := []string{"Language", "Path", "Translated", "Fell Back", "Coverage", "Status"}
	align := []Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight, AlignLeft}
	if wide {
		headers = append(headers, "Backup", "Format", "Bytes")
		align = append(align, AlignLeft, AlignLeft, AlignRight)
	}

	rows := make([][]string, 0, len(report.Targets))
	for _, t := range report.Targets {
		row := []string{
			LanguageName(t.Language),
			t.Path,
			fmt.Sprintf("%d/%d", t.Stats.Translated, t.Stats.Keys),
			strconv.Itoa(t.Stats.FellBack),
			fmt.Sprintf("%.0f%%", t.Stats.Coverage()*100),
			Status(report, t),
		}
		if wide {
			row = append(row, t.Backup, t.Format.String(), strconv.Itoa(t.Bytes))
		}
		rows = append(rows, row)
	}

	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: align,
	}
}

// Status describes what happened to a target.
func Status(report *batch.Report, t batch.TargetReport) string {
	switch {
	case t.Stats.Mismatches > 0 && report.DryRun:
		return fmt.Sprintf("would write, %d mismatches", t.Stats.Mismatches)
	case t.Stats.Mismatches > 0:
		return fmt.Sprintf("written, %d mismatches", t.Stats.Mismatches)
	case report.DryRun && t.Changed:
		return "would change"
	case report.DryRun:
		return "unchanged"
	case t.Written && t.Changed:
		return "updated"
	case t.Written:
		return "rewritten"
	default:
		return "pending"
	}
}
