package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/shiptrack/internal/export"
	"github.com/MrJamesThe3rd/shiptrack/internal/shipment"
)

type exportState int

const (
	exportStateTimeframe exportState = iota
	exportStateOptions
	exportStateExporting
	exportStateResult
)

// exportOptions is shared by pointer with the huh form.
type exportOptions struct {
	Format string
	Dir    string
}

type ExportModel struct {
	CommonModel
	exportService *export.Service
	loc           *time.Location

	state           exportState
	err             error
	timeframePicker TimeframePicker

	filter  shipment.Filter
	form    *huh.Form
	options *exportOptions
	spinner spinner.Model
	summary string
}

func NewExportModel(svc *export.Service, loc *time.Location) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		exportService:   svc,
		loc:             loc,
		state:           exportStateTimeframe,
		timeframePicker: NewTimeframePicker(loc),
		options:         &exportOptions{Format: string(export.FormatXLSX), Dir: "./exports"},
		spinner:         s,
	}
}

func (m ExportModel) Title() string { return "Export Shipments" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return nil
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if tfMsg, ok := msg.(TimeframeSelectedMsg); ok {
		m.filter = tfMsg.Filter
		m.form = m.buildOptionsForm()
		m.state = exportStateOptions

		return m, m.form.Init()
	}

	switch m.state {
	case exportStateTimeframe:
		return m.updateTimeframe(msg)
	case exportStateOptions:
		return m.updateOptions(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ExportModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m ExportModel) updateOptions(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = exportStateTimeframe
			m.timeframePicker.Reset()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(m.filter, *m.options))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.summary = result.body

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) buildOptionsForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("format").
				Title("Format").
				Options(
					huh.NewOption("Excel (.xlsx)", string(export.FormatXLSX)),
					huh.NewOption("CSV (.csv)", string(export.FormatCSV)),
				).
				Value(&m.options.Format),

			huh.NewInput().
				Key("dir").
				Title("Output Directory").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports").
				Value(&m.options.Dir),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case exportStateOptions:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Exporting: %s\n\n%s", activeStyle(filterLabel(m.filter)), m.form.View()),
		)

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Exporting shipments...", m.spinner.View()),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Export Complete!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", m.summary),
	)
}

type exportResultMsg struct {
	body string
	err  error
}

const exportTimeout = 2 * time.Minute

func (m ExportModel) runExportCmd(filter shipment.Filter, opts exportOptions) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		path, n, err := exportToFile(ctx, m.exportService, filter, opts, time.Now().In(m.loc))
		if err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{body: fmt.Sprintf("Wrote %d shipments to %s", n, path)}
	}
}

// exportToFile writes the export into opts.Dir and returns the file path.
// A failed export leaves no partial file behind.
func exportToFile(
	ctx context.Context,
	svc *export.Service,
	filter shipment.Filter,
	opts exportOptions,
	at time.Time,
) (string, int, error) {
	format, err := export.ParseFormat(opts.Format)
	if err != nil {
		return "", 0, err
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(opts.Dir, format.Filename(at))

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create export file: %w", err)
	}

	n, err := svc.Export(ctx, filter, format, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		os.Remove(path)
		return "", 0, err
	}

	return path, n, nil
}
