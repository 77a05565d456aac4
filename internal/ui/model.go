package ui

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/akashbangaru2005/pro-math-calculator/internal/commands"
	"github.com/akashbangaru2005/pro-math-calculator/internal/engine"
	"github.com/akashbangaru2005/pro-math-calculator/internal/memory"
	"github.com/akashbangaru2005/pro-math-calculator/internal/sound"
)

var (
	artStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#68FF6B")).Bold(true)
	outputStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8FF60"))
	echoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7A8C7A"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B2FF9E"))
	memStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#1B1B1B")).Background(lipgloss.Color("#FFD75F")).Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6BFFB8")).Italic(true)
)

const errorDisplay = "Error"

// messages for animation ticks
type tickMsg time.Time

// engineMsg carries output from background commands such as :export
type engineMsg string

// replyMsg is the result of a ':' command run off the event loop
type replyMsg struct{ reply engine.Reply }

type savedMsg struct{ err error }

type recentMsg []string

type Model struct {
	ascii     string
	input     textinput.Model
	outputBuf []string
	engine    *engine.Engine
	mem       memory.Register
	echo      string
	width     int
	height    int

	// may be nil, sound is optional
	sound *sound.SoundManager

	//boot animation state
	booting       bool
	bootLines     []string
	bootLineIndex int
	bootCharIndex int

	//a ':' command is running
	waiting bool

	//command output typing state
	printing       bool
	printLines     []string
	printLineIndex int
	printCharIndex int
}

func NewModel(e *engine.Engine, ascii string, sm *sound.SoundManager) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "0    e.g. sin(30)+2^3, 5!, :help"
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 60

	bootMsgs := []string{
		"Warming up the keypad...",
		"Trigonometry set to degrees.",
		"Ready.",
	}

	return Model{
		ascii:     ascii,
		input:     ti,
		engine:    e,
		booting:   true,
		bootLines: bootMsgs,
		sound:     sm,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(bootTickCmd(), m.waitForEngine())
}

func (m Model) waitForEngine() tea.Cmd {
	if m.engine == nil || m.engine.MsgChan == nil {
		return nil
	}
	ch := m.engine.MsgChan
	return func() tea.Msg { return engineMsg(<-ch) }
}

func (m Model) busy() bool { return m.booting || m.waiting || m.printing }

// history calls may go over the network, so they run as commands

func (m Model) saveCmd(r engine.Reply) tea.Cmd {
	e := m.engine
	return func() tea.Msg { return savedMsg{err: e.Save(r)} }
}

func (m Model) recentCmd() tea.Cmd {
	e := m.engine
	return func() tea.Msg { return recentMsg(recentLines(e)) }
}

func (m *Model) play(evt string) {
	if m.sound != nil {
		m.sound.PlayEvent(evt)
	}
}

// insert puts s at the cursor.
func (m *Model) insert(s string) {
	v := []rune(m.input.Value())
	pos := m.input.Position()
	if pos > len(v) {
		pos = len(v)
	}
	m.input.SetValue(string(v[:pos]) + s + string(v[pos:]))
	m.input.SetCursor(pos + utf8.RuneCountInString(s))
}

func (m *Model) setDisplay(s string) {
	m.input.SetValue(s)
	m.input.CursorEnd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		return m.handleTick()
	case engineMsg:
		m.outputBuf = append(m.outputBuf, strings.Split(outputStyle.Render(string(msg)), "\n")...)
		return m, m.waitForEngine()
	case replyMsg:
		return m.startPrinting(msg.reply)
	case savedMsg:
		if msg.err != nil {
			m.outputBuf = append(m.outputBuf, "history save error: "+msg.err.Error())
		}
		return m, nil
	case recentMsg:
		m.outputBuf = append(m.outputBuf, msg...)
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.input.SetValue("")
			m.echo = ""
			return m, nil
		}
		//ignore the rest while animating or waiting on a command
		if m.busy() {
			return m, nil
		}
		switch msg.String() {
		case "enter":
			return m.submit()
		case "ctrl+p":
			m.insert("π")
			m.play(sound.Key)
			return m, nil
		case "alt+p":
			m.mem.Add(m.input.Value())
			return m, nil
		case "alt+m":
			m.mem.Sub(m.input.Value())
			return m, nil
		case "alt+r":
			m.setDisplay(m.mem.Recall())
			return m, nil
		case "alt+c":
			m.mem.Clear()
			return m, nil
		}
		if msg.Type == tea.KeyRunes {
			//typing after an error starts over
			if m.input.Value() == errorDisplay {
				m.input.SetValue("")
			}
			m.play(sound.Key)
		}
	}

	if !m.busy() {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	val := strings.TrimSpace(m.input.Value())
	if val == "" {
		return m, nil
	}
	if strings.HasPrefix(val, ":") {
		m.input.SetValue("")
		m.waiting = true
		m.outputBuf = append(m.outputBuf, promptStyle.Render("> ")+val)
		e := m.engine
		return m, func() tea.Msg { return replyMsg{reply: e.Execute(val)} }
	}

	r := m.engine.Execute(val)
	if r.Failed {
		//the echo keeps the last successful evaluation
		m.setDisplay(r.Display)
		m.play(sound.Error)
		return m, nil
	}
	m.echo = r.Echo
	m.setDisplay(r.Display)
	m.outputBuf = append(m.outputBuf, outputStyle.Render(r.Echo+" "+r.Display))
	m.play(sound.Result)
	return m, m.saveCmd(r)
}

// startPrinting types command output out below the prompt echo.
func (m Model) startPrinting(r engine.Reply) (tea.Model, tea.Cmd) {
	m.waiting = false
	if r.Output == "" {
		return m, nil
	}
	m.printLines = strings.Split(r.Output, "\n")
	m.printLineIndex = 0
	m.printCharIndex = 0
	m.printing = true
	m.outputBuf = append(m.outputBuf, "")
	m.play(sound.Result)
	return m, printTickCmd()
}

func (m Model) View() string {
	sb := &strings.Builder{}

	art := centerArt(m.ascii, m.width)
	sb.WriteString(artStyle.Render(art))
	sb.WriteString("\n")

	maxLines := 18
	if m.height > 0 {
		maxLines = m.height - strings.Count(art, "\n") - 7
		if maxLines < 4 {
			maxLines = 4
		}
	}
	start := 0
	if len(m.outputBuf) > maxLines {
		start = len(m.outputBuf) - maxLines
	}
	for _, line := range m.outputBuf[start:] {
		sb.WriteString(line + "\n")
	}

	sb.WriteString("\n" + echoStyle.Render(m.echo) + "\n")
	badge := "  "
	if m.mem.Active() {
		badge = memStyle.Render("M") + " "
	}
	if m.busy() {
		sb.WriteString(badge + promptStyle.Render("> ") + "..." + "\n\n")
	} else {
		sb.WriteString(badge + promptStyle.Render("> ") + m.input.View() + "\n\n")
	}

	sb.WriteString(footerStyle.Render("procalc · :help for commands · Esc clears · Ctrl+C quits"))
	return sb.String()
}

// centerArt centers each ASCII line horizontally.
func centerArt(ascii string, width int) string {
	if width <= 0 {
		return ascii
	}
	var b strings.Builder
	for _, line := range strings.Split(ascii, "\n") {
		trim := strings.TrimRight(line, " ")
		rlen := utf8.RuneCountInString(trim)
		padding := 0
		if rlen < width {
			padding = (width - rlen) / 2
		}
		if padding > 0 {
			b.WriteString(strings.Repeat(" ", padding))
		}
		b.WriteString(trim + "\n")
	}
	return b.String()
}

/***animation tick helpers***/

func bootTickCmd() tea.Cmd {
	return tea.Tick(30*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func printTickCmd() tea.Cmd {
	return tea.Tick(12*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func pause(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// appendRune adds r to the last output line.
func (m *Model) appendRune(r rune) {
	if len(m.outputBuf) == 0 {
		m.outputBuf = append(m.outputBuf, "")
	}
	last := len(m.outputBuf) - 1
	m.outputBuf[last] += string(r)
}

// recentLines is the history window shown once the boot text is done.
func recentLines(e *engine.Engine) []string {
	h, err := e.Recent()
	if err != nil {
		return []string{"history unavailable: " + err.Error()}
	}
	if len(h) == 0 {
		return nil
	}
	out := []string{echoStyle.Render("recent:")}
	for _, line := range strings.Split(commands.FormatHistory(h), "\n") {
		out = append(out, outputStyle.Render("  "+line))
	}
	return out
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.booting {
		if m.bootLineIndex >= len(m.bootLines) {
			m.booting = false
			m.outputBuf = append(m.outputBuf, "")
			m.play(sound.Startup)
			return m, m.recentCmd()
		}
		runes := []rune(m.bootLines[m.bootLineIndex])
		if m.bootCharIndex == 0 {
			m.outputBuf = append(m.outputBuf, "")
		}
		if m.bootCharIndex < len(runes) {
			m.appendRune(runes[m.bootCharIndex])
			m.bootCharIndex++
			return m, bootTickCmd()
		}
		m.bootLineIndex++
		m.bootCharIndex = 0
		return m, pause(250 * time.Millisecond)
	}

	if m.printing {
		if m.printLineIndex >= len(m.printLines) {
			m.printing = false
			return m, nil
		}
		runes := []rune(m.printLines[m.printLineIndex])
		if m.printCharIndex < len(runes) {
			m.appendRune(runes[m.printCharIndex])
			if m.printCharIndex%4 == 0 {
				m.play(sound.Key)
			}
			m.printCharIndex++
			return m, printTickCmd()
		}
		m.printLineIndex++
		m.printCharIndex = 0
		if m.printLineIndex < len(m.printLines) {
			m.outputBuf = append(m.outputBuf, "")
			return m, pause(80 * time.Millisecond)
		}
		m.printing = false
		return m, nil
	}

	return m, nil
}
