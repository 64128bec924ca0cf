package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"bagextract/internal/batch"
)

type SummaryRow struct {
	Label string
	Value string
}

// ResultRows builds the post-run summary for res.
func ResultRows(res batch.Result) []SummaryRow {
	s := res.Summary()
	rows := []SummaryRow{
		{Label: "Outcome", Value: res.State.String()},
		{Label: "Files selected", Value: fmt.Sprintf("%d", s.Total)},
		{Label: "Extracted", Value: fmt.Sprintf("%d", s.Succeeded)},
		{Label: "Failed", Value: fmt.Sprintf("%d", s.Failed)},
	}
	if res.State == batch.StateCanceled {
		rows = append(rows,
			SummaryRow{Label: "Interrupted", Value: fmt.Sprintf("%d", s.Canceled)},
			SummaryRow{Label: "Not started", Value: fmt.Sprintf("%d", s.Pending)},
		)
	}
	rows = append(rows, SummaryRow{Label: "Elapsed", Value: res.Elapsed.Round(time.Second).String()})
	return rows
}

func RenderSummary(rows []SummaryRow) string {
	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
		if len(row.Value) > valueWidth {
			valueWidth = len(row.Value)
		}
	}

	hline := dimStyle.Render(strings.Repeat("-", labelWidth+valueWidth+3))
	lines := []string{hline}

	for _, row := range rows {
		label := padRight(row.Label, labelWidth)
		value := padRight(row.Value, valueWidth)
		line := fmt.Sprintf("%s | %s", labelStyle.Render(label), valueStyleFor(row).Render(value))
		lines = append(lines, line)
	}

	lines = append(lines, hline)
	return strings.Join(lines, "\n")
}

func valueStyleFor(row SummaryRow) lipgloss.Style {
	switch {
	case row.Label == "Outcome" && row.Value == batch.StateCompleted.String():
		return valueStyle.Foreground(ColorSuccess)
	case row.Label == "Outcome":
		return valueStyle.Foreground(ColorWarn)
	case row.Label == "Failed" && row.Value != "0":
		return valueStyle.Foreground(ColorError)
	default:
		return valueStyle
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

var (
	valueStyle = lipgloss.NewStyle().Foreground(ColorInk).Bold(true)
)
