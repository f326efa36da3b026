package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/metcalfc/skim/internal/rsvp"
	"github.com/metcalfc/skim/internal/state"
)

var (
	orpStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF0000"))

	wordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00")).
			Bold(true)

	completeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	blockStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	blockTagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5F87FF"))
)

// drainGap is the breather between background processing steps so
// slide ticks are never starved.
const drainGap = 10 * time.Millisecond

type readModel struct {
	doc      *loadedDoc
	store    *state.Store
	paused   bool
	quitting bool
	width    int
	height   int
	lastJump time.Time
	bar      progress.Model
}

type tickMsg time.Time
type drainMsg struct{}

func (m *readModel) Init() tea.Cmd {
	return tea.Batch(m.tickCurrent(), drainTick())
}

func (m *readModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case " ":
			m.paused = !m.paused
			if !m.paused {
				return m, m.tickCurrent()
			}
			return m, nil

		case "+", "=", "up":
			if wpm := m.doc.sess.WPM(); wpm < 1500 {
				m.doc.sess.SetWPM(wpm + 50)
			}
			return m, nil

		case "-", "down":
			if wpm := m.doc.sess.WPM(); wpm > 100 {
				m.doc.sess.SetWPM(wpm - 50)
			}
			return m, nil

		case "left":
			m.pauseOnJump()
			m.doc.sess.JumpToPrevSentence()
			return m, nil

		case "right":
			m.pauseOnJump()
			m.doc.sess.JumpToNextSentence()
			return m, nil

		case "g":
			m.paused = true
			m.doc.sess.Seek(0)
			return m, nil

		case "G":
			m.paused = true
			m.doc.sess.SeekEnd()
			return m, nil

		case "q", "Q", "ctrl+c":
			m.saveState()
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = msg.Width - 4
		return m, nil

	case tickMsg:
		if m.paused {
			return m, nil
		}
		if m.doc.sess.Advance() {
			return m, m.tickCurrent()
		}
		m.saveState()
		m.quitting = true
		return m, tea.Quit

	case drainMsg:
		// One chunk per message keeps the processor's work
		// cooperative: playback ticks interleave freely.
		if m.quitting || m.doc.sess.Done() {
			return m, nil
		}
		m.doc.sess.Drain()
		return m, drainTick()
	}

	return m, nil
}

func (m *readModel) pauseOnJump() {
	now := time.Now()
	if now.Sub(m.lastJump) > 500*time.Millisecond {
		m.paused = true
	}
	m.lastJump = now
}

func (m *readModel) saveState() {
	if m.store == nil || m.doc.hash == "" {
		return
	}
	_ = m.store.Set(m.doc.hash, state.ReadingState{
		SlideIndex: m.doc.sess.Index(),
		WPM:        m.doc.sess.WPM(),
	})
}

// tickCurrent schedules the next advance after the current slide's
// display time plus its trailing pause.
func (m *readModel) tickCurrent() tea.Cmd {
	s := m.doc.sess.Current()
	if s == nil {
		return tea.Quit
	}
	d := time.Duration(s.PreDelay+s.Duration+s.PostDelay) * time.Millisecond
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func drainTick() tea.Cmd {
	return tea.Tick(drainGap, func(time.Time) tea.Msg {
		return drainMsg{}
	})
}

func (m *readModel) View() string {
	if m.quitting {
		return completeStyle.Render("\n  Reading complete!\n")
	}

	s := m.doc.sess.Current()
	if s == nil {
		return "No text to read."
	}

	current, total := m.doc.sess.Progress()
	pause := ""
	if m.paused {
		pause = pausedStyle.Render(" [PAUSED]")
	}
	approx := ""
	if !m.doc.sess.Done() {
		approx = "~"
	}
	status := statusStyle.Render(
		fmt.Sprintf("Slide %d/%s%d | %d WPM%s", current, approx, total, m.doc.sess.WPM(), pause),
	)

	controls := controlsStyle.Render("SPACE: pause/play  ↑/↓: speed  ←/→: sentence  g/G: start/end  Q: quit")

	var body string
	if s.Block != "" && s.Block != rsvp.BlockText {
		body = renderBlockSlide(s, m.width)
	} else {
		body = anchorSlide(s, m.width)
	}

	avail := m.height - 3
	if avail < 1 {
		avail = 1
	}
	bodyLines := strings.Count(body, "\n") + 1
	vPad := (avail - bodyLines) / 2
	if vPad < 0 {
		vPad = 0
	}

	var sb strings.Builder
	sb.WriteString(status)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("\n", vPad))
	sb.WriteString(body)
	remaining := avail - vPad - bodyLines
	if remaining > 0 {
		sb.WriteString(strings.Repeat("\n", remaining))
	}
	sb.WriteString("\n")
	frac := 0.0
	if total > 0 {
		frac = float64(current) / float64(total)
	}
	sb.WriteString("  " + m.bar.ViewAs(frac) + "\n")
	sb.WriteString(controls)

	return sb.String()
}

// anchorSlide renders an RSVP slide with its fixation character
// highlighted and pinned to the horizontal center of the screen.
func anchorSlide(s *rsvp.Slide, width int) string {
	runes := []rune(s.Text)
	fix := s.Fixation
	if fix > len(runes) {
		fix = len(runes)
	}
	if fix < 1 {
		fix = 1
	}

	before := string(runes[:fix-1])
	focus := string(runes[fix-1])
	after := ""
	if fix < len(runes) {
		after = string(runes[fix:])
	}

	line := wordStyle.Render(before) + orpStyle.Render(focus) + wordStyle.Render(after)

	// Cell distance from slide start to the middle of the fixation
	// rune, measured exactly.
	offset := rsvp.PixelOffset(s.Text, fix, "", 0, rsvp.TerminalMetrics{CellWidth: 1})
	pad := width/2 - int(math.Round(offset))
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + line
}

// renderBlockSlide shows a verbatim block (code, table, heading,
// image) centered in a box with a small type tag.
func renderBlockSlide(s *rsvp.Slide, width int) string {
	tag := string(s.Block)
	switch s.Block {
	case rsvp.BlockCode:
		if s.Metadata.Language != "" {
			tag = "code: " + s.Metadata.Language
		}
	case rsvp.BlockHeading:
		tag = fmt.Sprintf("h%d", s.Metadata.Level)
	case rsvp.BlockImage:
		tag = "image: " + s.Metadata.Source
	}

	box := blockStyle.Render(s.Text)
	out := blockTagStyle.Render(tag) + "\n" + box
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, out)
}

func newReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read [file]",
		Short: "Read a document slide by slide",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := activeCfg.Settings()
			doc, err := loadDocument(args, settings)
			if err != nil {
				return err
			}

			m := &readModel{
				doc:    doc,
				paused: true,
				width:  80,
				height: 24,
				bar:    progress.New(progress.WithDefaultGradient()),
			}

			if activeCfg.App.Resume && doc.hash != "" {
				if store, err := state.NewStore(); err == nil {
					m.store = store
					saved := store.Get(doc.hash)
					if saved.SlideIndex > 0 {
						doc.sess.Seek(saved.SlideIndex)
					}
					if saved.WPM > 0 {
						doc.sess.SetWPM(saved.WPM)
					}
				}
			}

			p := tea.NewProgram(m, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}
