package piano

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	qwertypiano "github.com/ashish358/QwertyPiano"
	"gopkg.in/yaml.v3"
)

// Settings is the persisted configuration of the instrument: the initial
// control state plus optional key-binding overrides. Recordings themselves
// are never persisted, only this.
type Settings struct {
	Octave    int            `yaml:"octave"`
	Waveform  string         `yaml:"waveform"`
	Volume    float32        `yaml:"volume"`
	MIDIInput string         `yaml:"midiinput,omitempty"`
	Keys      map[string]int `yaml:"keys,omitempty"` // key cap -> semitone offset
}

func DefaultSettings() Settings {
	return Settings{Octave: 4, Waveform: qwertypiano.Sine.String(), Volume: 0.3}
}

// LoadSettings reads settings from a YAML file, falling back to defaults if
// the file does not exist.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return DefaultSettings(), fmt.Errorf("reading settings: %w", err)
	}
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("parsing settings: %w", err)
	}
	s.Octave = qwertypiano.ClampOctave(s.Octave)
	s.Volume = clampVolume(s.Volume)
	return s, nil
}

// Save writes the settings as YAML, creating parent directories as needed.
func (s Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("creating settings directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// KeyMap builds the effective key map: the default layout with any overrides
// from the settings applied on top.
func (s Settings) KeyMap() qwertypiano.KeyMap {
	m := qwertypiano.DefaultKeyMap()
	for key, offset := range s.Keys {
		m[qwertypiano.Key(key)] = offset
	}
	return m
}

// WaveformValue parses the configured waveform name.
func (s Settings) WaveformValue() qwertypiano.Waveform {
	return qwertypiano.ParseWaveform(s.Waveform)
}
