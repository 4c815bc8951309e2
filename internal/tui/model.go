// Package tui is the terminal front-end for the table. The game runs on its
// own goroutine and talks to the bubbletea program through a Bridge.
package tui

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/game"
	"github.com/lox/holdem-table/internal/handlog"
)

const (
	sidebarWidth = 34
	tickInterval = 50 * time.Millisecond
)

// EventMsg carries a game event into the program
type EventMsg struct{ Event game.GameEvent }

// RequestMsg asks the human to act
type RequestMsg struct{ View game.PlayerView }

// NextRoundMsg asks the human whether to deal another round
type NextRoundMsg struct{}

type tickMsg time.Time

// Options configures the model
type Options struct {
	HumanName    string
	ShowAllCards bool
	Animate      bool
	Mute         bool
	Clock        quartz.Clock
	Logger       *log.Logger
}

// Model is the bubbletea model for the table
type Model struct {
	opts   Options
	logger *log.Logger

	logViewport viewport.Model
	actionInput textinput.Model
	gameLog     []string

	players   []game.PlayerSnapshot
	community []deck.Card
	stage     game.Stage
	pot       *game.AnimatedValue
	revealed  bool
	sound     game.Sound

	view        *game.PlayerView
	waitingNext bool
	gameOver    bool
	status      string
	statusStyle lipgloss.Style

	decisions chan game.Decision
	nextRound chan bool

	width, height int
	quitting      bool
}

// NewModel creates a table model
func NewModel(opts Options) *Model {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Placeholder = "fold, check, call, raise <amount>, allin"
	ti.CharLimit = 32
	ti.Width = 48
	ti.Focus()

	vp := viewport.New(80, 20)

	return &Model{
		opts:        opts,
		logger:      opts.Logger,
		logViewport: vp,
		actionInput: ti,
		pot:         game.NewAnimatedValue(opts.Clock, opts.Animate),
		decisions:   make(chan game.Decision, 1),
		nextRound:   make(chan bool, 1),
		statusStyle: InfoStyle,
		width:       120,
		height:      30,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.opts.Animate {
		cmds = append(cmds, tick())
	}
	return tea.Batch(cmds...)
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.QuitMsg:
		return m, m.quit()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()

	case tickMsg:
		return m, tick()

	case EventMsg:
		m.handleEvent(msg.Event)

	case RequestMsg:
		v := msg.View
		m.view = &v
		m.waitingNext = false
		m.setStatus(fmt.Sprintf("Your turn: %s", availableText(v)), WarningStyle)
		m.actionInput.Reset()
		m.actionInput.Focus()

	case NextRoundMsg:
		m.waitingNext = true
		m.setStatus("Press enter to deal the next round, or type quit", InfoStyle)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, m.quit()
		case "enter":
			return m, m.submit()
		case "up":
			m.logViewport.ScrollUp(1)
			return m, nil
		case "down":
			m.logViewport.ScrollDown(1)
			return m, nil
		case "pgup":
			m.logViewport.HalfPageUp()
			return m, nil
		case "pgdown":
			m.logViewport.HalfPageDown()
			return m, nil
		case "home":
			m.logViewport.GotoTop()
			return m, nil
		case "end":
			m.logViewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.actionInput, cmd = m.actionInput.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) quit() tea.Cmd {
	if !m.quitting {
		m.quitting = true
		// release a game loop waiting to deal again
		select {
		case m.nextRound <- false:
		default:
		}
	}
	return tea.Quit
}

func (m *Model) submit() tea.Cmd {
	input := strings.TrimSpace(m.actionInput.Value())
	m.actionInput.Reset()

	switch {
	case m.gameOver:
		return m.quit()

	case m.waitingNext:
		if input == "q" || input == "quit" {
			return m.quit()
		}
		m.waitingNext = false
		select {
		case m.nextRound <- true:
		default:
		}
		m.setStatus("Dealing...", InfoStyle)
		return nil

	case m.view != nil:
		d, err := ParseAction(input, *m.view)
		if err != nil {
			m.setStatus(err.Error(), ErrorStyle)
			return nil
		}
		m.logger.Debug("Human decision", "action", d.Kind, "amount", d.Amount)
		m.view = nil
		select {
		case m.decisions <- d:
		default:
		}
		m.setStatus(fmt.Sprintf("You chose %s", d), SuccessStyle)
		return nil
	}

	if input == "q" || input == "quit" {
		return m.quit()
	}
	m.setStatus("Waiting for the other players", InfoStyle)
	return nil
}

func (m *Model) setStatus(s string, style lipgloss.Style) {
	m.status = s
	m.statusStyle = style
}

func (m *Model) handleEvent(e game.GameEvent) {
	switch e := e.(type) {
	case game.HandStartEvent:
		m.players = e.Players
		m.community = nil
		m.revealed = false
		m.stage = game.StageNewHand
		m.pot.Set(0)

	case game.StageChangedEvent:
		m.stage = e.Stage
		m.players = e.Players
		m.community = e.Community
		m.pot.Set(e.Pot)

	case game.CardsDealtEvent:
		if e.IsCommunity() {
			m.community = append(m.community, e.Card)
		} else if i := m.playerIndex(e.Player); i >= 0 {
			m.players[i].Hand = append(slices.Clone(m.players[i].Hand), e.Card)
		}

	case game.PlayerActionEvent:
		if i := m.playerIndex(e.Player.Name); i >= 0 {
			m.players[i] = e.Player
		}
		m.pot.Set(e.PotAfter)

	case game.RoundCompleteEvent:
		m.players = e.Players
		m.community = e.Board
		m.revealed = true
		m.pot.Set(0)

	case game.GameOverEvent:
		m.gameOver = true
		m.view = nil
		m.waitingNext = false
		m.setStatus("Game over. Press enter to leave", WarningStyle)

	case game.SoundEvent:
		if !m.opts.Mute {
			m.sound = e.Sound
		}
		return
	}

	lines := handlog.Format(e, handlog.Options{Perspective: m.opts.HumanName, ShowAllCards: m.opts.ShowAllCards})
	if len(lines) > 0 {
		m.appendLog(lines...)
	}
}

func (m *Model) playerIndex(name string) int {
	return slices.IndexFunc(m.players, func(p game.PlayerSnapshot) bool { return p.Name == name })
}

func (m *Model) appendLog(lines ...string) {
	m.gameLog = append(m.gameLog, lines...)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	m.logViewport.GotoBottom()
}

func (m *Model) resize() {
	logWidth := max(m.width-sidebarWidth-4, 20)
	logHeight := max(m.height-9, 5)
	m.logViewport.Width = logWidth
	m.logViewport.Height = logHeight
	m.actionInput.Width = max(logWidth-4, 10)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	header := HeaderStyle.Render("Texas Hold'em")
	logPane := paneStyle.Render(m.logViewport.View())
	sidebar := paneStyle.Width(sidebarWidth).Render(m.renderSidebar())
	top := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebar)

	return lipgloss.JoinVertical(lipgloss.Left, header, top, m.renderActionPane())
}

func (m *Model) renderSidebar() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", HandInfoStyle.Render(fmt.Sprintf("Pot: $%d", m.pot.Current())))
	if m.stage != game.StageNewHand {
		fmt.Fprintf(&b, "%s\n", InfoStyle.Render(m.stage.String()))
	}
	fmt.Fprintf(&b, "Board: %s\n\n", renderCards(m.community))

	for _, p := range m.players {
		fmt.Fprintf(&b, "%s\n", m.renderPlayer(p))
	}

	if m.sound != "" {
		fmt.Fprintf(&b, "\n%s", InfoStyle.Render("♪ "+string(m.sound)))
	}
	return b.String()
}

func (m *Model) renderPlayer(p game.PlayerSnapshot) string {
	name := p.Name
	if p.Dealer {
		name += " (D)"
	}

	var style lipgloss.Style
	switch {
	case !p.InPlay && p.LastAction == game.Fold:
		style = FoldedPlayerStyle
	case p.Current:
		style = CurrentPlayerStyle
		name = "▶ " + name
	default:
		style = lipgloss.NewStyle()
	}

	line := style.Render(name)
	line += fmt.Sprintf("  $%d", p.Money)
	if p.BetAmount > 0 {
		line += fmt.Sprintf(" bet $%d", p.BetAmount)
	}
	if p.AllIn {
		line += " " + WarningStyle.Render("ALL IN")
	}

	cards := renderHidden(len(p.Hand))
	if p.Human || m.opts.ShowAllCards || (m.revealed && p.InPlay) {
		cards = renderCards(p.Hand)
	}
	return line + "\n  " + cards
}

func (m *Model) renderActionPane() string {
	var b strings.Builder

	if v := m.view; v != nil {
		fmt.Fprintf(&b, "%s  Call $%d  Raise $%d-$%d\n",
			renderCards(v.Hand), v.CallAmount, v.MinRaise, v.MaxRaise)
	}
	if m.status != "" {
		fmt.Fprintf(&b, "%s\n", m.statusStyle.Render(m.status))
	}
	b.WriteString(m.actionInput.View())

	return paneStyle.Width(max(m.width-2, 20)).Render(b.String())
}

func availableText(v game.PlayerView) string {
	names := make([]string, 0, len(v.Available))
	for _, a := range v.Available {
		names = append(names, strings.ToLower(a.String()))
	}
	return strings.Join(names, ", ")
}

func renderCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return InfoStyle.Render("-")
	}
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

func renderHidden(n int) string {
	if n == 0 {
		return ""
	}
	return HiddenCardStyle.Render(strings.TrimSpace(strings.Repeat("## ", n)))
}
