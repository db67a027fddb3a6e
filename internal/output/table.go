// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
)

// TableWriter renders rows in a borderless tabular form with the given
// column headers.
func TableWriter(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Align(lipgloss.Left)
			if col > 0 {
				style = style.PaddingLeft(2) //nolint:mnd
			}
			return style
		}).
		Headers().
		Rows(rows...)

	// https://github.com/charmbracelet/lipgloss/issues/261
	t = t.Headers(headers...).BorderHeader(false)

	fmt.Println(t)
}
