package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hoangvn/nhatro/internal/billing"
)

type generateState int

const (
	generateStateForm generateState = iota
	generateStateRunning
	generateStateDone
)

type GenerateModel struct {
	CommonModel
	billingService *billing.Service

	state  generateState
	form   *huh.Form
	result *billing.Result
	err    error

	// Form bindings
	formMonth string
	formYear  string
}

func NewGenerateModel(billingSvc *billing.Service) GenerateModel {
	now := time.Now()

	m := GenerateModel{
		billingService: billingSvc,
		formMonth:      strconv.Itoa(int(now.Month())),
		formYear:       strconv.Itoa(now.Year()),
	}
	m.form = m.newForm()

	return m
}

func (m GenerateModel) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("month").
				Title("Tháng").
				Value(&m.formMonth).
				Validate(func(s string) error {
					v, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || v < 1 || v > 12 {
						return fmt.Errorf("tháng phải từ 1 đến 12")
					}
					return nil
				}),

			huh.NewInput().
				Key("year").
				Title("Năm").
				Value(&m.formYear).
				Validate(func(s string) error {
					if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("năm không hợp lệ")
					}
					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m GenerateModel) Title() string { return "Lập hóa đơn tháng" }
func (m GenerateModel) ShortHelp() string {
	if m.state == generateStateDone {
		return "Enter: run again | Esc: back"
	}

	return "Navigate form | Esc: back"
}

func (m GenerateModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m GenerateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case generateDoneMsg:
		m.state = generateStateDone
		m.result = msg.result
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if m.state == generateStateDone && msg.Type == tea.KeyEnter {
			m.state = generateStateForm
			m.form = m.newForm()
			return m, m.form.Init()
		}
	}

	if m.state != generateStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = generateStateRunning

	return m, m.generateCmd()
}

func (m GenerateModel) View() string {
	switch m.state {
	case generateStateRunning:
		return lipgloss.NewStyle().Padding(2).Render("Đang lập hóa đơn...")

	case generateStateDone:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
		}

		var b strings.Builder

		fmt.Fprintf(&b, "Kỳ %s: %d hóa đơn, %d phòng bỏ qua\n",
			m.result.Period, len(m.result.Created), len(m.result.Skipped))

		if len(m.result.Created) > 0 {
			b.WriteString("\nĐã lập:\n")

			for _, c := range m.result.Created {
				fmt.Fprintf(&b, "  %s\n", c.RoomCode)
			}
		}

		if len(m.result.Skipped) > 0 {
			b.WriteString("\nBỏ qua:\n")

			for _, s := range m.result.Skipped {
				fmt.Fprintf(&b, "  %s: %s", s.RoomCode, s.Reason)

				if s.Detail != "" {
					fmt.Fprintf(&b, " (%s)", s.Detail)
				}

				b.WriteString("\n")
			}
		}

		b.WriteString("\nEnter: lập kỳ khác | Esc: quay lại")

		return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	}

	panel := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render("Lập hóa đơn tháng\n\n" + m.form.View())

	return lipgloss.NewStyle().Padding(1).Render(panel)
}

// Messages

type generateDoneMsg struct {
	result *billing.Result
	err    error
}

func (m GenerateModel) generateCmd() tea.Cmd {
	month, _ := strconv.Atoi(strings.TrimSpace(m.formMonth))
	year, _ := strconv.Atoi(strings.TrimSpace(m.formYear))

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		result, err := m.billingService.Generate(ctx, billing.Period{Month: month, Year: year}, nil)
		return generateDoneMsg{result: result, err: err}
	}
}
