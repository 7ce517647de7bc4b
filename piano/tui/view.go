package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	qwertypiano "github.com/ashish358/QwertyPiano"
)

var (
	whiteKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("232")).
			Background(lipgloss.Color("255")).
			Padding(0, 1)
	blackKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)
	downKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("232")).
			Background(lipgloss.Color("214")).
			Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	alertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.keyboardView())
	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(meterBar(m.level.Peak, 24)))
	b.WriteString("\n")
	if !m.audioReady() {
		b.WriteString(alertStyle.Render("waiting for the audio device..."))
		b.WriteString("\n")
	}
	if m.alert != "" {
		b.WriteString(alertStyle.Render(m.alert))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("z/x octave · c waveform · v/b volume · n sustain · r record · space play · m all notes off · q quit"))
	b.WriteString("\n")
	return b.String()
}

// keyboardView draws the bound keys as two rows: accidentals above, naturals
// below, each cell captioned with its key cap, the sounding ones highlighted.
func (m Model) keyboardView() string {
	var top, bottom []string
	for _, binding := range m.layout {
		cell := m.keyCell(binding)
		if qwertypiano.IsAccidental(binding.Offset) {
			top = append(top, cell)
		} else {
			if len(top) < len(bottom)+1 {
				top = append(top, strings.Repeat(" ", lipgloss.Width(cell)))
			}
			bottom = append(bottom, cell)
		}
	}
	return "  " + strings.Join(top, " ") + "\n" + strings.Join(bottom, " ")
}

func (m Model) keyCell(binding qwertypiano.KeyBinding) string {
	label := string(binding.Key)
	switch {
	case m.down[binding.Key]:
		return downKeyStyle.Render(label)
	case qwertypiano.IsAccidental(binding.Offset):
		return blackKeyStyle.Render(label)
	default:
		return whiteKeyStyle.Render(label)
	}
}

func (m Model) statusView() string {
	parts := []string{
		fmt.Sprintf("octave %d", m.status.Octave),
		m.status.Waveform.String(),
		fmt.Sprintf("vol %3.0f%%", m.status.Volume*100),
	}
	if m.status.NoteName != "" {
		parts = append(parts, m.status.NoteName)
	}
	line := statusStyle.Render(strings.Join(parts, " · "))
	if m.status.Sustain {
		line += "  " + activeStyle.Render("SUSTAIN")
	}
	if m.status.Recording {
		line += "  " + activeStyle.Render("● REC")
	}
	if m.status.Playing {
		line += "  " + activeStyle.Render("▶ PLAY")
	} else if m.status.HasRecording {
		line += "  " + statusStyle.Render("recording ready")
	}
	return line
}
