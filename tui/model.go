package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lparp/arp"
	"lparp/theme"
	"lparp/widgets"
)

// Model mirrors the hardware grid in the terminal. It is strictly
// read-only: state arrives as snapshots from the control loop, and the
// only input it feeds back is a stop request on quit.
type Model struct {
	Theme *theme.Theme

	updates  <-chan arp.Snapshot
	done     <-chan struct{}
	stop     func()
	snap     arp.Snapshot
	seen     bool
	quitting bool
}

type SnapshotMsg arp.Snapshot

type DoneMsg struct{}

// NewModel wires the mirror to the control loop's snapshot stream.
// stop asks the loop to exit; done closes once it has.
func NewModel(updates <-chan arp.Snapshot, done <-chan struct{}, stop func(), th *theme.Theme) Model {
	return Model{
		Theme:   th,
		updates: updates,
		done:    done,
		stop:    stop,
	}
}

func listenForSnapshots(updates <-chan arp.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return SnapshotMsg(<-updates)
	}
}

func listenForDone(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return DoneMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		listenForSnapshots(m.updates),
		listenForDone(m.done),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			// Ask the control loop to stop; DoneMsg closes the TUI
			m.quitting = true
			m.stop()
		}

	case SnapshotMsg:
		m.snap = arp.Snapshot(msg)
		m.seen = true
		return m, listenForSnapshots(m.updates)

	case DoneMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())

	if !m.seen {
		return "\n" + headerStyle.Render("lparp") + "\n\n" +
			dimStyle.Render("waiting for the clock...") + "\n"
	}

	s := m.snap

	stateStyle := lipgloss.NewStyle().Foreground(m.Theme.Paused())
	playState := "PAUSE"
	if s.Playing {
		playState = "PLAY"
		stateStyle = lipgloss.NewStyle().Foreground(m.Theme.Playing())
	}

	header := headerStyle.Render(fmt.Sprintf("lparp  %3dbpm  page:%d  %s  oct:%d  col:%02d  ",
		s.BPM, s.Page+1, s.Scale, s.Octave, s.Playhead)) + stateStyle.Render(playState)

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(m.renderGrid(s))
	out.WriteString("\n\n")
	out.WriteString(widgets.RenderLegendItem(m.Theme.PadCell(), "cell", "active pattern step"))
	out.WriteString("\n")
	out.WriteString(widgets.RenderLegendItem(m.Theme.PadTracker(), "sweep", "real-time position"))
	out.WriteString("\n")
	out.WriteString(widgets.RenderLegendItem(m.Theme.PadOctave(), "octave", "right-hand strip"))
	out.WriteString("\n\n")
	out.WriteString(dimStyle.Render("mirror of the hardware grid - q:quit"))
	return out.String()
}

// renderGrid rebuilds the 8x9 pad view from the snapshot: pattern
// cells of the visible page, the sweep LED on the bottom row, and the
// octave strip on the right.
func (m Model) renderGrid(s arp.Snapshot) string {
	off := m.Theme.PadOff()

	grid := make([][][3]uint8, 8)
	for y := range grid {
		grid[y] = make([][3]uint8, 9)
		for x := range grid[y] {
			grid[y][x] = off
		}
	}

	for x, col := range s.PageWindow() {
		if col.Degree == 0 {
			continue
		}
		grid[7-col.Degree][x] = m.Theme.PadCell()
	}

	if s.TrackerVisible() {
		grid[7][s.Tracker%arp.PageLen] = m.Theme.PadTracker()
	}

	grid[7-s.Octave][8] = m.Theme.PadOctave()

	return widgets.RenderPadGrid(grid)
}
