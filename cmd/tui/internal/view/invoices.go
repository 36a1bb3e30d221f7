package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hoangvn/nhatro/internal/billing"
)

type invoicesState int

const (
	invoicesStateBrowse invoicesState = iota
	invoicesStatePay
)

type InvoicesModel struct {
	CommonModel
	billingService *billing.Service

	state    invoicesState
	table    table.Model
	invoices []*billing.Invoice
	form     *huh.Form

	period billing.Period

	statusFilterIdx int
	filter          billing.ListFilter

	loading bool
	err     error
	status  string

	// Form bindings
	formAmount string
	formNote   string
}

func NewInvoicesModel(billingSvc *billing.Service) InvoicesModel {
	columns := []table.Column{
		{Title: "Phòng", Width: 8},
		{Title: "Kỳ", Width: 8},
		{Title: "Tổng", Width: 12},
		{Title: "Đã thu", Width: 12},
		{Title: "Còn lại", Width: 12},
		{Title: "Trạng thái", Width: 10},
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

	now := time.Now()
	period := billing.Period{Month: int(now.Month()), Year: now.Year()}

	return InvoicesModel{
		billingService: billingSvc,
		table:          t,
		period:         period,
		filter:         billing.ListFilter{Period: &period},
	}
}

func (m InvoicesModel) Title() string { return "Hóa đơn" }
func (m InvoicesModel) ShortHelp() string {
	if m.state == invoicesStatePay {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | p: pay | t: settle | s: status filter | [/]: month | r: refresh"
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.loadInvoicesCmd()
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInvoicesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.invoices = msg.invoices
		m.err = nil
		m.refreshTable()
		return m, nil

	case paymentSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Thu %s cho phòng %s", FormatVND(msg.amount), msg.roomCode)
		}
		m.state = invoicesStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadInvoicesCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case invoicesStateBrowse:
		return m.updateBrowse(msg)
	case invoicesStatePay:
		return m.updatePay(msg)
	}

	return m, nil
}

func (m InvoicesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadInvoicesCmd()
		case "p":
			return m.enterPayMode()
		case "t":
			return m, m.settleCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % 4
			m.applyFilter()
			return m, m.loadInvoicesCmd()
		case "[":
			m.period = m.period.Previous()
			m.applyFilter()
			return m, m.loadInvoicesCmd()
		case "]":
			m.period = nextPeriod(m.period)
			m.applyFilter()
			return m, m.loadInvoicesCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func nextPeriod(p billing.Period) billing.Period {
	if p.Month == 12 {
		return billing.Period{Month: 1, Year: p.Year + 1}
	}

	return billing.Period{Month: p.Month + 1, Year: p.Year}
}

func (m InvoicesModel) selected() *billing.Invoice {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.invoices) {
		return nil
	}

	return m.invoices[idx]
}

func (m InvoicesModel) enterPayMode() (tea.Model, tea.Cmd) {
	inv := m.selected()
	if inv == nil {
		return m, nil
	}

	m.formAmount = strconv.FormatInt(inv.RemainingDebt(), 10)
	m.formNote = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Số tiền (VND)").
				Value(&m.formAmount).
				Validate(func(s string) error {
					v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
					if err != nil || v <= 0 {
						return fmt.Errorf("số tiền phải là số dương")
					}
					return nil
				}),

			huh.NewInput().
				Key("note").
				Title("Ghi chú").
				Value(&m.formNote),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = invoicesStatePay
	m.table.Blur()
	return m, m.form.Init()
}

func (m InvoicesModel) updatePay(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = invoicesStateBrowse
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

	return m, m.recordPaymentCmd()
}

func (m InvoicesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Đang tải hóa đơn...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	statusLabels := []string{"Tất cả", "Chưa thu", "Thu một phần", "Đã thu"}

	header := fmt.Sprintf(
		"Kỳ [/]: %s | [s] Trạng thái: %s",
		activeStyle(m.period.String()),
		activeStyle(statusLabels[m.statusFilterIdx]),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == invoicesStatePay && m.form != nil {
		roomCode := ""
		if inv := m.selected(); inv != nil {
			roomCode = inv.RoomCode
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(
				fmt.Sprintf("Thu tiền phòng %s\n\n%s", roomCode, m.form.View()),
			)

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *InvoicesModel) applyFilter() {
	period := m.period
	m.filter.Period = &period

	switch m.statusFilterIdx {
	case 1:
		m.filter.Status = new(billing.StatusUnpaid)
	case 2:
		m.filter.Status = new(billing.StatusPartial)
	case 3:
		m.filter.Status = new(billing.StatusPaid)
	default:
		m.filter.Status = nil
	}
}

func (m *InvoicesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.invoices))
	for _, inv := range m.invoices {
		rows = append(rows, table.Row{
			inv.RoomCode,
			inv.Period.String(),
			FormatVND(inv.Total),
			FormatVND(inv.PaidAmount),
			FormatVND(inv.RemainingDebt()),
			string(inv.Status),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadInvoicesMsg struct {
	invoices []*billing.Invoice
	err      error
}

func (m InvoicesModel) loadInvoicesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		invoices, err := m.billingService.List(ctx, m.filter)
		return loadInvoicesMsg{invoices: invoices, err: err}
	}
}

type paymentSavedMsg struct {
	roomCode string
	amount   int64
	err      error
}

func (m InvoicesModel) recordPaymentCmd() tea.Cmd {
	inv := m.selected()
	if inv == nil {
		return nil
	}

	amount, _ := strconv.ParseInt(strings.TrimSpace(m.formAmount), 10, 64)
	note := m.formNote

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.billingService.RecordPayment(ctx, inv.ID, amount, note)
		return paymentSavedMsg{roomCode: inv.RoomCode, amount: amount, err: err}
	}
}

func (m InvoicesModel) settleCmd() tea.Cmd {
	inv := m.selected()
	if inv == nil {
		return nil
	}

	amount := inv.RemainingDebt()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.billingService.MarkFullyPaid(ctx, inv.ID)
		return paymentSavedMsg{roomCode: inv.RoomCode, amount: amount, err: err}
	}
}
