// Package config loads flexterm settings from TOML with environment overrides
// and converts them into the per-package configurations.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lixenwraith/flexterm/audio"
	"github.com/lixenwraith/flexterm/dialog"
	"github.com/lixenwraith/flexterm/editor"
	"github.com/lixenwraith/flexterm/geom"
	"github.com/lixenwraith/flexterm/style"
	"github.com/pelletier/go-toml/v2"
)

// EnvLog overrides Log.Path
const EnvLog = "FLEXTERM_LOG"

// Config is the flexterm.toml document
type Config struct {
	Log    LogConfig             `toml:"log"`
	Audio  AudioConfig           `toml:"audio"`
	Editor EditorConfig          `toml:"editor"`
	Dialog DialogConfig          `toml:"dialog"`
	Styles map[string]style.Def `toml:"styles"`
}

type LogConfig struct {
	// Empty disables logging
	Path string `toml:"path"`
}

type AudioConfig struct {
	Enabled    bool               `toml:"enabled"`
	Volume     int                `toml:"volume"` // 0-100
	SampleRate int                `toml:"sample_rate"`
	Sounds     map[string]float64 `toml:"sounds"` // per-sound volume keyed by name
}

type EditorConfig struct {
	LineNumbers bool `toml:"line_numbers"`
	ReadOnly    bool `toml:"read_only"`
}

type DialogConfig struct {
	Autocomplete      bool `toml:"autocomplete"`
	Filter            bool `toml:"filter"`
	MaxVisibleResults int  `toml:"max_visible_results"`
	WidthPercent      int  `toml:"width_percent"`
}

// Default returns the configuration used when no file exists
func Default() Config {
	return Config{
		Audio: AudioConfig{
			Volume:     50,
			SampleRate: 44100,
		},
		Editor: EditorConfig{
			LineNumbers: true,
		},
		Dialog: DialogConfig{
			Autocomplete:      true,
			Filter:            true,
			MaxVisibleResults: dialog.DefaultMaxVisibleResults,
			WidthPercent:      dialog.DefaultWidthPercent,
		},
		Styles: map[string]style.Def{},
	}
}

// Load reads path over the defaults, then applies environment overrides
// A missing file is not an error
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("config: %w", err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config %s: %w", path, err)
			}
			if err := cfg.Validate(); err != nil {
				return Config{}, fmt.Errorf("config %s: %w", path, err)
			}
		}
	}
	cfg = cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg as TOML, creating parent directories
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Validate checks ranges that the converters rely on
func (c Config) Validate() error {
	if _, err := geom.NewPercent(c.Dialog.WidthPercent); err != nil {
		return fmt.Errorf("dialog.width_percent: %w", err)
	}
	if _, err := geom.NewPercent(c.Audio.Volume); err != nil {
		return fmt.Errorf("audio.volume: %w", err)
	}
	for name := range c.Audio.Sounds {
		if _, ok := audio.ParseSound(name); !ok {
			return fmt.Errorf("audio.sounds.%s: %w", name, audio.ErrUnknownSound)
		}
	}
	return nil
}

func (c Config) applyEnv() Config {
	if p := os.Getenv(EnvLog); p != "" {
		c.Log.Path = p
	}
	a := audio.ApplyEnv(c.AudioConfig())
	c.Audio.Enabled = a.Enabled
	c.Audio.Volume = int(a.MasterVolume*100 + 0.5)
	c.Audio.SampleRate = a.SampleRate
	return c
}

// Stylesheet builds the stylesheet from the styles section
func (c Config) Stylesheet() (*style.Stylesheet, error) {
	return style.FromDefs(c.Styles)
}

// AudioConfig converts the audio section
func (c Config) AudioConfig() audio.Config {
	out := audio.DefaultConfig()
	out.Enabled = c.Audio.Enabled
	out.MasterVolume = float64(c.Audio.Volume) / 100
	if c.Audio.SampleRate > 0 {
		out.SampleRate = c.Audio.SampleRate
	}
	for name, v := range c.Audio.Sounds {
		if s, ok := audio.ParseSound(name); ok {
			out.Volumes[s] = v
		}
	}
	return out
}

// EditorConfig converts the editor section, taking styles from ss where present
func (c Config) EditorConfig(ss *style.Stylesheet) editor.Config {
	out := editor.DefaultConfig()
	out.LineNumbers = c.Editor.LineNumbers
	if c.Editor.ReadOnly {
		out.EditMode = editor.ReadOnly
	}
	st := &out.Styles
	override(ss, &st.Text, "editor.text")
	override(ss, &st.Gutter, "editor.gutter")
	override(ss, &st.CurrentLine, "editor.current_line")
	override(ss, &st.Selection, "editor.selection")
	override(ss, &st.Indicator, "editor.indicator")
	return out
}

// DialogConfig converts the dialog section, taking styles from ss where present
func (c Config) DialogConfig(ss *style.Stylesheet) dialog.Config {
	out := dialog.DefaultConfig()
	out.Mode = dialog.ModeNormal
	if c.Dialog.Autocomplete {
		out.Mode = dialog.ModeAutocomplete
	}
	out.FilterResults = c.Dialog.Filter
	out.MaxVisibleResults = c.Dialog.MaxVisibleResults
	out.WidthPercent = geom.Percent(c.Dialog.WidthPercent)

	st := &out.Styles
	override(ss, &st.Frame, "dialog.frame")
	override(ss, &st.Title, "dialog.title")
	override(ss, &st.Input, "dialog.input")
	override(ss, &st.Result, "dialog.result")
	override(ss, &st.Selected, "dialog.selected")
	override(ss, &st.Match, "dialog.match")
	return out
}

func override(ss *style.Stylesheet, dst *style.Style, id string) {
	if ss == nil {
		return
	}
	if st, ok := ss.Find(id); ok {
		*dst = st
	}
}
