// Package tui is the terminal presentation layer: it renders the virtual
// keyboard, translates terminal key presses into engine messages and shows
// the control state published by the engine.
//
// Terminals deliver no key-release events, so a note key press synthesizes a
// down transition followed by a scheduled up: a short hold normally, a longer
// one while sustain is engaged.
package tui

import (
	"fmt"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	qwertypiano "github.com/ashish358/QwertyPiano"
	"github.com/ashish358/QwertyPiano/piano"
)

const (
	holdDuration        = 250 * time.Millisecond
	sustainHoldDuration = 900 * time.Millisecond
	alertDuration       = 3 * time.Second
)

type (
	Model struct {
		broker     *piano.Broker
		layout     []qwertypiano.KeyBinding
		audioReady func() bool

		down    map[qwertypiano.Key]bool
		presses map[qwertypiano.Key]int // press generation, to cancel stale key-ups
		status  piano.StatusMsg
		level   piano.LevelMsg
		alert   string
	}

	engineMsg struct{ msg any }

	keyUpMsg struct {
		key qwertypiano.Key
		gen int
	}

	clearAlertMsg struct{}
)

// NewModel builds the UI model. audioReady lets the view prompt the user
// while the audio device is still warming up.
func NewModel(broker *piano.Broker, keys qwertypiano.KeyMap, settings piano.Settings, audioReady func() bool) Model {
	layout := make([]qwertypiano.KeyBinding, 0, len(keys))
	for key, offset := range keys {
		layout = append(layout, qwertypiano.KeyBinding{Key: key, Offset: offset})
	}
	sort.Slice(layout, func(i, j int) bool { return layout[i].Offset < layout[j].Offset })
	return Model{
		broker:     broker,
		layout:     layout,
		audioReady: audioReady,
		down:       make(map[qwertypiano.Key]bool),
		presses:    make(map[qwertypiano.Key]int),
		status: piano.StatusMsg{
			Octave:   qwertypiano.ClampOctave(settings.Octave),
			Waveform: settings.WaveformValue(),
			Volume:   settings.Volume,
		},
		level: piano.LevelMsg{Peak: -60, Average: -60},
	}
}

func listenEngine(broker *piano.Broker) tea.Cmd {
	return func() tea.Msg {
		return engineMsg{msg: <-broker.ToUI}
	}
}

func (m Model) Init() tea.Cmd {
	return listenEngine(m.broker)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case keyUpMsg:
		if m.presses[msg.key] == msg.gen {
			m.send(piano.NoteOffMsg{Key: msg.key})
		}
	case clearAlertMsg:
		m.alert = ""
	case engineMsg:
		switch em := msg.msg.(type) {
		case piano.KeyStateMsg:
			if em.Down {
				m.down[em.Key] = true
			} else {
				delete(m.down, em.Key)
			}
		case piano.StatusMsg:
			m.status = em
		case piano.LevelMsg:
			m.level = em
		case piano.AlertMsg:
			m.alert = em.Message
			return m, tea.Batch(listenEngine(m.broker),
				tea.Tick(alertDuration, func(time.Time) tea.Msg { return clearAlertMsg{} }))
		}
		return m, listenEngine(m.broker)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.send(piano.PanicMsg{})
		return m, tea.Quit
	case "z":
		m.send(piano.OctaveMsg{Delta: -1})
	case "x":
		m.send(piano.OctaveMsg{Delta: 1})
	case "c":
		next := (m.status.Waveform + 1) % qwertypiano.NumWaveforms
		m.send(piano.WaveformMsg{Waveform: next})
	case "v":
		m.send(piano.VolumeMsg{Delta: -0.05})
	case "b":
		m.send(piano.VolumeMsg{Delta: 0.05})
	case "n":
		m.send(piano.SustainMsg{On: !m.status.Sustain})
	case "r":
		m.send(piano.RecordMsg{On: !m.status.Recording})
	case " ":
		m.send(piano.PlayMsg{})
	case "m":
		m.send(piano.PanicMsg{})
	default:
		key := qwertypiano.Key(msg.String())
		if !m.mapped(key) {
			break
		}
		m.send(piano.NoteOnMsg{Key: key})
		m.presses[key]++
		gen := m.presses[key]
		hold := holdDuration
		if m.status.Sustain {
			hold = sustainHoldDuration
		}
		return m, tea.Tick(hold, func(time.Time) tea.Msg { return keyUpMsg{key: key, gen: gen} })
	}
	return m, nil
}

func (m Model) mapped(key qwertypiano.Key) bool {
	for _, b := range m.layout {
		if b.Key == key {
			return true
		}
	}
	return false
}

// send is fire-and-forget; if the engine queue is full the message is simply
// dropped, like any other non-blocking send in the system.
func (m Model) send(msg any) {
	piano.TrySend(m.broker.ToEngine, msg)
}

func meterBar(dB float64, width int) string {
	filled := int((dB + 60) / 60 * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return fmt.Sprintf("%s %5.1f dB", bar, dB)
}
