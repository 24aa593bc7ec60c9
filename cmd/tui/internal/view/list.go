package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/shiptrack/internal/shipment"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateTimeframe
	listStateForm
	listStateConfirmDelete
)

type ListModel struct {
	CommonModel
	shipmentService *shipment.Service

	state           listState
	table           table.Model
	shipments       []*shipment.Shipment
	form            *huh.Form
	timeframePicker TimeframePicker

	filter  shipment.Filter
	loading bool
	err     error
	status  string

	// Pointers so the form keeps writing to the same values across model copies.
	fields        *shipmentFields
	editing       *shipment.Shipment
	confirmDelete *bool
}

func NewListModel(svc *shipment.Service, loc *time.Location) ListModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Date", Width: 12},
		{Title: "Code", Width: 16},
		{Title: "Recipient", Width: 22},
		{Title: "Total", Width: 12},
		{Title: "Fee", Width: 10},
		{Title: "Paid By", Width: 10},
		{Title: "Issuer", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ListModel{
		shipmentService: svc,
		table:           t,
		timeframePicker: NewTimeframePicker(loc),
		filter:          shipment.NoFilter(),
		loading:         true,
	}
}

func (m ListModel) Title() string { return "Shipments" }

func (m ListModel) ShortHelp() string {
	switch m.state {
	case listStateForm:
		return "Navigate form | Esc: cancel"
	case listStateConfirmDelete:
		return "Enter: confirm | Esc: cancel"
	case listStateTimeframe:
		return "Enter: select | Esc: cancel"
	}

	return "Esc: back | n: new | e: edit | x: delete | f: all/this week | t: timeframe | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.shipments = msg.shipments
		m.refreshTable()

		return m, nil

	case listSaveMsg:
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		return m, m.loadCmd()

	case TimeframeSelectedMsg:
		m.filter = msg.Filter
		m.state = listStateBrowse
		m.loading = true
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-10, 5))

		return m, nil
	}

	switch m.state {
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStateTimeframe:
		return m.updateTimeframe(msg)
	case listStateForm, listStateConfirmDelete:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "f":
			if m.filter.Kind == shipment.FilterCurrentWeek {
				m.filter = shipment.NoFilter()
			} else {
				m.filter = shipment.CurrentWeek()
			}

			m.loading = true

			return m, m.loadCmd()
		case "t":
			m.timeframePicker.Reset()
			m.state = listStateTimeframe
			m.table.Blur()

			return m, nil
		case "n":
			return m.openForm(nil)
		case "e":
			if sel := m.selected(); sel != nil {
				return m.openForm(sel)
			}

			return m, nil
		case "x":
			return m.openDeleteConfirm()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			m.state = listStateBrowse
			m.table.Focus()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m ListModel) selected() *shipment.Shipment {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.shipments) {
		return nil
	}

	return m.shipments[idx]
}

// openForm starts the create form, or the edit form when sel is not nil.
func (m ListModel) openForm(sel *shipment.Shipment) (tea.Model, tea.Cmd) {
	m.editing = sel
	m.fields = &shipmentFields{Date: FormatDate(time.Now())}

	if sel != nil {
		fields := fieldsFromShipment(sel)
		m.fields = &fields
	}

	m.form = newShipmentForm(m.fields)
	m.state = listStateForm
	m.status = ""
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) openDeleteConfirm() (tea.Model, tea.Cmd) {
	sel := m.selected()
	if sel == nil {
		return m, nil
	}

	m.editing = sel
	m.confirmDelete = new(false)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete shipment %s?", sel.Code)).
				Affirmative("Delete").
				Negative("Keep").
				Value(m.confirmDelete),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateConfirmDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = listStateBrowse
			m.form = nil
			m.table.Focus()

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

	if m.state == listStateConfirmDelete {
		return m, m.deleteCmd()
	}

	return m, m.saveCmd()
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading shipments...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(r to retry, Esc to go back)", m.err))
	}

	if m.state == listStateTimeframe {
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())
	}

	header := fmt.Sprintf("Showing: %s  |  %d shipments  |  %s",
		activeStyle(filterLabel(m.filter)),
		len(m.shipments),
		lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if (m.state == listStateForm || m.state == listStateConfirmDelete) && m.form != nil {
		title := "New Shipment"
		if m.editing != nil {
			title = fmt.Sprintf("Edit Shipment #%d", m.editing.ID)
		}

		if m.state == listStateConfirmDelete {
			title = "Delete Shipment"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.shipments))
	for _, s := range m.shipments {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", s.ID),
			FormatDate(s.Date),
			s.Code,
			orDash(s.RecipientName),
			FormatAmount(s.TotalAmount),
			FormatAmount(s.ShippingFee),
			orDash(string(s.PaymentSource)),
			orDash(s.IssuingCompany),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadListMsg struct {
	shipments []*shipment.Shipment
	err       error
}

func (m ListModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		shipments, err := m.shipmentService.List(ctx, filter)

		return loadListMsg{shipments: shipments, err: err}
	}
}

type listSaveMsg struct {
	status string
	err    error
}

func (m ListModel) saveCmd() tea.Cmd {
	editing := m.editing

	params, err := m.fields.params()
	if err != nil {
		return func() tea.Msg { return listSaveMsg{err: err} }
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if editing == nil {
			s, err := m.shipmentService.Create(ctx, params)
			if err != nil {
				return listSaveMsg{err: err}
			}

			return listSaveMsg{status: fmt.Sprintf("Created shipment %s (#%d).", s.Code, s.ID)}
		}

		if _, err := m.shipmentService.Update(ctx, editing.ID, params); err != nil {
			return listSaveMsg{err: err}
		}

		return listSaveMsg{status: fmt.Sprintf("Updated shipment #%d.", editing.ID)}
	}
}

func (m ListModel) deleteCmd() tea.Cmd {
	target := m.editing
	if target == nil || m.confirmDelete == nil || !*m.confirmDelete {
		return func() tea.Msg { return listSaveMsg{status: "Delete cancelled."} }
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.shipmentService.Delete(ctx, target.ID); err != nil {
			return listSaveMsg{err: err}
		}

		return listSaveMsg{status: fmt.Sprintf("Deleted shipment %s.", target.Code)}
	}
}
