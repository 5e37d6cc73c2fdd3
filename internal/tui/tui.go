package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/game"
)

// Model is the Bubble Tea model for a local table. It drives the
// session directly: every command mutates it and appends to the log.
type Model struct {
	session *game.Session
	logger  *log.Logger

	logViewport viewport.Model
	actionInput textinput.Model

	gameLog  []string
	quitting bool

	width       int
	height      int
	initialized bool
}

// NewModel creates a TUI model around an existing session
func NewModel(session *game.Session, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "check, call, bet 50, raise 100, fold, deal, showdown, new, quit"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 80
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.Prompt = "> "

	m := &Model{
		session:     session,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		actionInput: ti,
	}
	m.addLog(HeaderStyle.Render(fmt.Sprintf(" Hand #%d ", session.HandNumber)))
	m.addLog(fmt.Sprintf("Your cards: %s", m.formatCards(session.Players[0].HoleCards)))
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "enter":
			command := strings.TrimSpace(m.actionInput.Value())
			m.actionInput.SetValue("")
			if command == "quit" || command == "exit" {
				m.quitting = true
				return m, tea.Sequence(tea.ClearScreen, tea.Quit)
			}
			if command != "" {
				m.runCommand(command)
			}
		}
	}

	var cmd tea.Cmd
	m.actionInput, cmd = m.actionInput.Update(msg)
	cmds = append(cmds, cmd)
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// runCommand parses and applies one line of user input
func (m *Model) runCommand(command string) {
	fields := strings.Fields(strings.ToLower(command))
	verb := fields[0]

	switch verb {
	case "deal":
		m.deal()
		return
	case "showdown":
		m.session.Showdown()
		m.logRoundResult()
		return
	case "new":
		m.session.NextHand()
		m.addLog(HeaderStyle.Render(fmt.Sprintf(" Hand #%d ", m.session.HandNumber)))
		m.addLog(fmt.Sprintf("Your cards: %s", m.formatCards(m.session.Players[0].HoleCards)))
		return
	}

	actionType, err := game.ParseActionType(verb)
	if err != nil {
		m.addLog(ErrorStyle.Render(fmt.Sprintf("Unknown command %q", verb)))
		return
	}

	amount := 0
	if len(fields) > 1 {
		amount, err = strconv.Atoi(fields[1])
		if err != nil {
			m.addLog(ErrorStyle.Render(fmt.Sprintf("Bad amount %q", fields[1])))
			return
		}
	}

	if err := m.session.ApplyAction(game.Action{Seat: 0, Type: actionType, Amount: amount}); err != nil {
		m.addLog(ErrorStyle.Render(err.Error()))
		return
	}

	m.addLog(SuccessStyle.Render(fmt.Sprintf("You %s%s", actionType, amountSuffix(actionType, amount))))
	if last := m.session.LastAction; last != nil && last.Seat != 0 {
		p := m.session.Players[last.Seat]
		m.addLog(fmt.Sprintf("%s %ss%s", p.Name, last.Type, amountSuffix(last.Type, last.Amount)))
	}
}

func amountSuffix(actionType game.ActionType, amount int) string {
	if actionType == game.Bet || actionType == game.Raise {
		return fmt.Sprintf(" $%d", amount)
	}
	return ""
}

// deal advances to the next street based on the current phase
func (m *Model) deal() {
	switch m.session.Phase {
	case game.PreFlop:
		m.session.DealFlop()
		m.addLog(HandInfoStyle.Render("*** FLOP ***") + " " + m.formatCards(m.session.Board))
	case game.Flop:
		m.session.DealTurn()
		m.addLog(HandInfoStyle.Render("*** TURN ***") + " " + m.formatCards(m.session.Board))
	case game.Turn:
		m.session.DealRiver()
		m.addLog(HandInfoStyle.Render("*** RIVER ***") + " " + m.formatCards(m.session.Board))
	case game.River:
		m.session.Showdown()
		m.logRoundResult()
	default:
		m.addLog(InfoStyle.Render("Hand is over, type 'new' for the next one"))
	}
}

func (m *Model) logRoundResult() {
	if len(m.session.History) == 0 {
		return
	}
	last := m.session.History[len(m.session.History)-1]
	if last.Winner != "" {
		m.addLog(WarningStyle.Render(fmt.Sprintf("%s wins the pot", last.Winner)))
	}
}

func (m *Model) addLog(line string) {
	m.gameLog = append(m.gameLog, line)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	m.logViewport.GotoBottom()
}

// formatCards renders cards with suit-appropriate colors
func (m *Model) formatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		if c.IsRed() {
			parts[i] = RedCardStyle.Render(c.String())
		} else {
			parts[i] = BlackCardStyle.Render(c.String())
		}
	}
	return strings.Join(parts, " ")
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent) + 2

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := 30
	if w := lipgloss.Width(sidebarContent); w > sidebarWidth {
		sidebarWidth = w
	}

	logWidth := max(m.width-sidebarWidth-4, 1)
	logHeight := max(m.height-actionHeight-2, 1)

	m.logViewport.Width = logWidth
	m.logViewport.Height = logHeight
	if !m.initialized && logWidth > 1 && logHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(logHeight).
		Render(m.logViewport.View())

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(logHeight).
		Render(sidebarContent)

	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(max(m.width-2, 1)).
		Render(actionContent)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

// renderSidebarPane shows the table state: pot, board and every seat
func (m *Model) renderSidebarPane() string {
	var content strings.Builder

	content.WriteString(WarningStyle.Render(fmt.Sprintf("Pot: $%d", m.session.Pot)))
	if m.session.CurrentBet > 0 {
		content.WriteString(WarningStyle.Render(fmt.Sprintf("  Bet: $%d", m.session.CurrentBet)))
	}
	content.WriteString("\n")
	content.WriteString(InfoStyle.Render(m.session.Phase.String()))
	content.WriteString("\n\n")

	if len(m.session.Board) > 0 {
		content.WriteString("Board: " + m.formatCards(m.session.Board) + "\n\n")
	}

	for seat, p := range m.session.Players {
		marker := "  "
		if seat == m.session.CurrentPlayer {
			marker = "▸ "
		}
		status := ""
		if !p.HasHoleCards() {
			status = InfoStyle.Render(" (folded)")
		}
		content.WriteString(fmt.Sprintf("%s%s: $%d  %.0f%%%s\n",
			marker, p.Name, p.Chips, p.WinProbability*100, status))
	}

	return content.String()
}

// renderActionPane shows the hole cards and the input field
func (m *Model) renderActionPane() string {
	var content strings.Builder

	human := m.session.Players[0]
	if human.HasHoleCards() {
		content.WriteString(HandInfoStyle.Render("Hand: "))
		content.WriteString(m.formatCards(human.HoleCards))
		content.WriteString(HandInfoStyle.Render(fmt.Sprintf("  Win: %.0f%%", human.WinProbability*100)))
		content.WriteString("\n")
	}

	content.WriteString(m.actionInput.View())
	content.WriteString("\n")
	content.WriteString(InfoStyle.Render("Enter to submit • Ctrl+C to quit"))

	return content.String()
}
