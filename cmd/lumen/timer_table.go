package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"lumen/internal/api"
)

const timerLabelPlaceholder = "-"

// renderTimerTable lists pending timers in firing order, as returned by the
// daemon. Unlabelled timers show a placeholder.
func renderTimerTable(timers []api.Timer) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "ID", "Label", "Fires At"})
	for i, timer := range timers {
		label := timer.Label
		if label == "" {
			label = timerLabelPlaceholder
		}
		tw.AppendRow(table.Row{strconv.Itoa(i + 1), timer.ID, label, timer.At})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignRight},
		{Number: 4, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
