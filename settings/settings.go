// Package settings persists player preferences and best times between runs.
package settings

import (
	"fmt"
	"log"
	"time"

	"github.com/quasilyte/gdata"
	"gopkg.in/yaml.v3"
)

const (
	AppName     = "runred"
	settingsKey = "settings"
)

// Store is the part of gdata.Manager this package needs.
type Store interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

type Settings struct {
	Muted       bool    `yaml:"muted"`
	MusicVolume float64 `yaml:"music_volume"`
	// BestTimes holds the fastest completion per level and variant.
	BestTimes map[string]time.Duration `yaml:"best_times"`
}

func Defaults() Settings {
	return Settings{MusicVolume: 0.6, BestTimes: map[string]time.Duration{}}
}

// Open returns the platform data store for the game.
func Open() (Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		return nil, fmt.Errorf("settings: open store: %w", err)
	}
	return m, nil
}

// Load reads saved settings. A nil store, a missing item or an unreadable one
// all give the defaults.
func Load(store Store) Settings {
	s := Defaults()
	if store == nil {
		return s
	}
	data, err := store.LoadItem(settingsKey)
	if err != nil {
		log.Printf("settings: load: %v", err)
		return s
	}
	if len(data) == 0 {
		return s
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		log.Printf("settings: parse: %v", err)
		return Defaults()
	}
	if s.BestTimes == nil {
		s.BestTimes = map[string]time.Duration{}
	}
	s.MusicVolume = clampVolume(s.MusicVolume)
	return s
}

func Save(store Store, s Settings) error {
	if store == nil {
		return nil
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := store.SaveItem(settingsKey, data); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	return nil
}

// EffectiveVolume is the music volume after muting.
func (s Settings) EffectiveVolume() float64 {
	if s.Muted {
		return 0
	}
	return clampVolume(s.MusicVolume)
}

// RecordTime stores elapsed as the best time for key when it beats the
// previous one, and reports whether it did.
func (s *Settings) RecordTime(key string, elapsed time.Duration) bool {
	if elapsed <= 0 {
		return false
	}
	if s.BestTimes == nil {
		s.BestTimes = map[string]time.Duration{}
	}
	if best, ok := s.BestTimes[key]; ok && best <= elapsed {
		return false
	}
	s.BestTimes[key] = elapsed
	return true
}

func (s Settings) Best(key string) (time.Duration, bool) {
	d, ok := s.BestTimes[key]
	return d, ok
}

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
