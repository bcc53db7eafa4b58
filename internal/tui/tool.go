package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/san-kum/hashviz/internal/api"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))

	banner = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color("#a02040")).
		Padding(0, 1)
)

// Backend is the part of the api client the tool talks to.
type Backend interface {
	Hash(ctx context.Context, text, algorithm string) (*api.HashResult, error)
	Match(ctx context.Context, text, digest string) (*api.MatchResult, error)
	Subscribe(ctx context.Context, email string) (*api.SubscribeResult, error)
}

type Mode int

const (
	ModeGenerate Mode = iota
	ModeMatch
	ModeSubscribe
)

var modeNames = []string{"generate", "match", "subscribe"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

const (
	fieldText = iota
	fieldDigest
	fieldEmail
)

// fields lists the inputs each mode cycles through with tab.
var fields = map[Mode][]int{
	ModeGenerate:  {fieldText},
	ModeMatch:     {fieldText, fieldDigest},
	ModeSubscribe: {fieldEmail},
}

type resultMsg struct {
	mode Mode
	line string
	ok   bool
	// alert is set when the request never produced a reply.
	alert string
}

type Model struct {
	backend Backend
	timeout time.Duration
	log     *zap.Logger

	mode   Mode
	inputs []textinput.Model
	focus  int
	algo   int

	busy    bool
	results map[Mode]resultMsg
	alert   string

	width int
}

func NewModel(backend Backend, timeout time.Duration, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = api.DefaultTimeout
	}

	text := textinput.New()
	text.Placeholder = "text"
	text.Prompt = "  "
	text.Width = 48

	digest := textinput.New()
	digest.Placeholder = "hash"
	digest.Prompt = "  "
	digest.Width = 48

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = "  "
	email.Width = 48

	m := Model{
		backend: backend,
		timeout: timeout,
		log:     log,
		inputs:  []textinput.Model{text, digest, email},
		results: make(map[Mode]resultMsg),
		width:   80,
	}
	m.refocus()
	return m
}

func (m Model) Mode() Mode        { return m.mode }
func (m Model) Algorithm() string { return api.Algorithms[m.algo] }
func (m Model) Busy() bool        { return m.busy }
func (m Model) Alert() string     { return m.alert }

// Result returns the last line shown for a mode.
func (m Model) Result(mode Mode) string { return m.results[mode].line }

func (m Model) Value(field int) string { return m.inputs[field].Value() }

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case resultMsg:
		return m.handleResult(msg), nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	idx := m.focused()
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// any key dismisses the alert, like closing a dialog
	if m.alert != "" {
		m.alert = ""
		if msg.String() != "ctrl+c" {
			return m, nil
		}
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "ctrl+n":
		m.mode = (m.mode + 1) % Mode(len(modeNames))
		m.focus = 0
		m.refocus()
		return m, nil
	case "tab", "down":
		m.focus = (m.focus + 1) % len(fields[m.mode])
		m.refocus()
		return m, nil
	case "shift+tab", "up":
		n := len(fields[m.mode])
		m.focus = (m.focus + n - 1) % n
		m.refocus()
		return m, nil
	case "left":
		if m.mode == ModeGenerate {
			m.algo = (m.algo + len(api.Algorithms) - 1) % len(api.Algorithms)
			return m, nil
		}
	case "right":
		if m.mode == ModeGenerate {
			m.algo = (m.algo + 1) % len(api.Algorithms)
			return m, nil
		}
	case "enter":
		return m.submit()
	}

	var cmd tea.Cmd
	idx := m.focused()
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

func (m Model) focused() int {
	return fields[m.mode][m.focus]
}

func (m *Model) refocus() {
	idx := m.focused()
	for i := range m.inputs {
		if i == idx {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// submit validates locally and hands the request to a tea.Cmd so the update
// loop never waits on the network.
func (m Model) submit() (Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	switch m.mode {
	case ModeGenerate:
		text := m.inputs[fieldText].Value()
		if text == "" {
			m.alert = api.MsgNeedText
			return m, nil
		}
		m.busy = true
		return m, m.hashCmd(text, m.Algorithm())

	case ModeMatch:
		text := m.inputs[fieldText].Value()
		digest := m.inputs[fieldDigest].Value()
		if text == "" || digest == "" {
			m.alert = api.MsgNeedTextAndHash
			return m, nil
		}
		m.busy = true
		return m, m.matchCmd(text, digest)

	case ModeSubscribe:
		email := strings.TrimSpace(m.inputs[fieldEmail].Value())
		if !api.ValidEmail(email) {
			m.alert = api.MsgInvalidEmail
			return m, nil
		}
		m.busy = true
		return m, m.subscribeCmd(email)
	}
	return m, nil
}

func (m Model) hashCmd(text, algorithm string) tea.Cmd {
	backend, timeout, log := m.backend, m.timeout, m.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		res, err := backend.Hash(ctx, text, algorithm)
		if err != nil {
			log.Warn("hash request failed", zap.Error(err))
			return resultMsg{mode: ModeGenerate, alert: api.MsgHashFailed}
		}
		return resultMsg{mode: ModeGenerate, line: res.Line(), ok: res.Hash != ""}
	}
}

func (m Model) matchCmd(text, digest string) tea.Cmd {
	backend, timeout, log := m.backend, m.timeout, m.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		res, err := backend.Match(ctx, text, digest)
		if err != nil {
			log.Warn("match request failed", zap.Error(err))
			return resultMsg{mode: ModeMatch, alert: api.MsgMatchFailed}
		}
		return resultMsg{mode: ModeMatch, line: res.Line(), ok: res.Match}
	}
}

func (m Model) subscribeCmd(email string) tea.Cmd {
	backend, timeout, log := m.backend, m.timeout, m.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		res, err := backend.Subscribe(ctx, email)
		if err != nil {
			log.Warn("subscribe request failed", zap.Error(err))
			return resultMsg{mode: ModeSubscribe, alert: api.MsgConnectFailed}
		}
		return resultMsg{mode: ModeSubscribe, line: res.Line(), ok: res.Success}
	}
}

func (m Model) handleResult(msg resultMsg) Model {
	m.busy = false
	if msg.alert != "" {
		m.alert = msg.alert
		return m
	}
	m.results[msg.mode] = msg
	if msg.mode == ModeSubscribe && msg.ok {
		m.inputs[fieldEmail].SetValue("")
	}
	return m
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("         " + cyan.Render("h a s h u t i l i t y") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	b.WriteString("    ")
	for i, name := range modeNames {
		if Mode(i) == m.mode {
			b.WriteString(cyan.Render("▸ ") + white.Render(name) + "   ")
		} else {
			b.WriteString("  " + dim.Render(name) + "   ")
		}
	}
	b.WriteString("\n\n")

	switch m.mode {
	case ModeGenerate:
		b.WriteString(m.viewField("text", fieldText))
		b.WriteString("    " + dim.Render("algorithm ") + magenta.Render("◂ "+m.Algorithm()+" ▸") + "\n")
	case ModeMatch:
		b.WriteString(m.viewField("text", fieldText))
		b.WriteString(m.viewField("hash", fieldDigest))
	case ModeSubscribe:
		b.WriteString(m.viewField("email", fieldEmail))
	}

	b.WriteString("\n")
	switch {
	case m.busy:
		b.WriteString("    " + dim.Render("…") + "\n")
	case m.results[m.mode].line != "":
		r := m.results[m.mode]
		style := red
		if r.ok {
			style = green
		}
		b.WriteString("    " + style.Render(r.line) + "\n")
	default:
		b.WriteString("    " + dimmer.Render("Output will appear here...") + "\n")
	}

	if m.alert != "" {
		b.WriteString("\n    " + banner.Render(m.alert) + "\n")
		b.WriteString("    " + dim.Render("press any key") + "\n")
	}

	b.WriteString("\n")
	help := "      tab field  enter submit  ctrl+n mode  esc quit"
	if m.mode == ModeGenerate {
		help = "      tab field  ←→ algorithm  enter submit  ctrl+n mode  esc quit"
	}
	b.WriteString(dim.Render(help) + "\n")

	return b.String()
}

func (m Model) viewField(label string, idx int) string {
	l := dim.Render(padRight(label, 6))
	if idx == m.focused() {
		l = white.Render(padRight(label, 6))
	}
	return "    " + l + m.inputs[idx].View() + "\n"
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

// Run starts the tool on the alternate screen and blocks until it quits.
func Run(backend Backend, timeout time.Duration, log *zap.Logger) error {
	p := tea.NewProgram(NewModel(backend, timeout, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
