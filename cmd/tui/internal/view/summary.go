package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/shiptrack/internal/report"
	"github.com/MrJamesThe3rd/shiptrack/internal/shipment"
)

const barWidth = 40

type summaryState int

const (
	summaryStateTimeframe summaryState = iota
	summaryStateLoading
	summaryStateResult
)

type SummaryModel struct {
	CommonModel
	shipmentService *shipment.Service

	state           summaryState
	timeframePicker TimeframePicker
	filter          shipment.Filter
	summary         report.Summary
	err             error
}

func NewSummaryModel(svc *shipment.Service, loc *time.Location) SummaryModel {
	return SummaryModel{
		shipmentService: svc,
		timeframePicker: NewTimeframePicker(loc),
	}
}

func (m SummaryModel) Title() string { return "Summary" }

func (m SummaryModel) ShortHelp() string {
	if m.state == summaryStateResult {
		return "Esc: pick another timeframe"
	}

	return "Esc: back | Enter: select"
}

func (m SummaryModel) Init() tea.Cmd {
	return nil
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.filter = msg.Filter
		m.state = summaryStateLoading

		return m, m.loadCmd()

	case summaryLoadedMsg:
		m.state = summaryStateResult
		m.err = msg.err
		m.summary = msg.summary

		return m, nil
	}

	switch m.state {
	case summaryStateTimeframe:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
				return m, Back
			}
		}

		var cmd tea.Cmd
		m.timeframePicker, cmd = m.timeframePicker.Update(msg)

		return m, cmd

	case summaryStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			m.state = summaryStateTimeframe
			m.timeframePicker.Reset()
		}
	}

	return m, nil
}

func (m SummaryModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case summaryStateTimeframe:
		return style.Render(m.timeframePicker.View())
	case summaryStateLoading:
		return style.Render("Loading summary...")
	}

	if m.err != nil {
		return style.Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	header := lipgloss.NewStyle().Bold(true).Render("Summary: " + filterLabel(m.filter))

	totals := fmt.Sprintf(
		"Shipments: %d\nTotal:     %s\nAverage:   %s\nFees:      %s",
		m.summary.Count,
		FormatAmount(m.summary.TotalAmount),
		FormatAmount(m.summary.AverageAmount),
		FormatAmount(m.summary.TotalShippingFee),
	)

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		totals,
		"",
		weekdayBars(m.summary, barWidth),
	))
}

// weekdayBars draws one horizontal bar per weekday, scaled to the busiest day.
func weekdayBars(s report.Summary, width int) string {
	peak := s.Peak()
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	lines := make([]string, len(s.ByWeekday))

	for i, total := range s.ByWeekday {
		n := 0
		if peak.IsPositive() && total.IsPositive() {
			n = int(total.Mul(decimal.NewFromInt(int64(width))).Div(peak).IntPart())
			n = max(n, 1)
		}

		lines[i] = fmt.Sprintf("%s %s%s %s",
			report.WeekdayLabel(i),
			bar.Render(strings.Repeat("█", n)),
			strings.Repeat(" ", width-n),
			FormatAmount(total),
		)
	}

	return strings.Join(lines, "\n")
}

type summaryLoadedMsg struct {
	summary report.Summary
	err     error
}

func (m SummaryModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		shipments, err := m.shipmentService.List(ctx, filter)
		if err != nil {
			return summaryLoadedMsg{err: err}
		}

		return summaryLoadedMsg{summary: report.Summarize(shipments)}
	}
}
