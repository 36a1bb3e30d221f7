package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/hoangvn/nhatro/cmd/tui/internal/view"
	"github.com/hoangvn/nhatro/internal/billing"
	billingStore "github.com/hoangvn/nhatro/internal/billing/store"
	"github.com/hoangvn/nhatro/internal/config"
	"github.com/hoangvn/nhatro/internal/database"
)

type model struct {
	billingService *billing.Service

	currentView View

	invoicesView view.InvoicesModel
	generateView view.GenerateModel
}

type View int

const (
	ViewMenu     View = 0
	ViewInvoices View = 1
	ViewGenerate View = 2
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	billingSvc := billing.NewService(billingStore.New(db))

	return model{
		billingService: billingSvc,
		currentView:    ViewMenu,
		invoicesView:   view.NewInvoicesModel(billingSvc),
		generateView:   view.NewGenerateModel(billingSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewInvoices
				m.invoicesView = view.NewInvoicesModel(m.billingService)

				return m, m.invoicesView.Init()
			case "2":
				m.currentView = ViewGenerate
				m.generateView = view.NewGenerateModel(m.billingService)

				return m, m.generateView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoicesView.Update(msg)
		m.invoicesView = newModel.(view.InvoicesModel)
	case ViewGenerate:
		var newModel tea.Model
		newModel, cmd = m.generateView.Update(msg)
		m.generateView = newModel.(view.GenerateModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Nhà Trọ TUI\n\n" +
				"1. Hóa đơn & thu tiền\n" +
				"2. Lập hóa đơn tháng\n\n" +
				"q. Quit",
		)
	case ViewInvoices:
		return m.invoicesView.View()
	case ViewGenerate:
		return m.generateView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
