package config

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jsterk/tafel/internal/session"
	"github.com/jsterk/tafel/internal/storage"
)

// settingsKey is the KeyValueStore key holding the remembered settings.
const settingsKey = "settings"

// Settings are the session defaults the setup screens start from. They are
// remembered across launches.
type Settings struct {
	Tables        []int  `json:"tables"`
	SpeedLabel    string `json:"speed"`
	QuestionCount int    `json:"question_count"`
}

// DefaultSettings selects every table, the default speed and test length.
func DefaultSettings() Settings {
	return Settings{
		Tables:        session.AllTables(),
		SpeedLabel:    session.DefaultSpeedTier().Label,
		QuestionCount: session.DefaultQuestionCount,
	}
}

// Speed resolves the remembered tier, falling back to the default when the
// stored label is unknown.
func (s Settings) Speed() session.SpeedTier {
	if tier, ok := session.SpeedTierByLabel(s.SpeedLabel); ok {
		return tier
	}
	return session.DefaultSpeedTier()
}

// SettingsStore persists Settings in the KeyValueStore.
type SettingsStore struct {
	kv storage.KeyValueStore
}

// NewSettingsStore returns a SettingsStore backed by kv.
func NewSettingsStore(kv storage.KeyValueStore) *SettingsStore {
	return &SettingsStore{kv: kv}
}

// Load returns the remembered settings. Missing or corrupt data, and any
// out-of-range values inside it, fall back to the defaults field by field.
func (s *SettingsStore) Load() (Settings, error) {
	data, ok, err := s.kv.Get(settingsKey)
	if err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}
	if !ok {
		return DefaultSettings(), nil
	}
	var loaded Settings
	if err := json.Unmarshal(data, &loaded); err != nil {
		return DefaultSettings(), nil
	}
	return sanitize(loaded), nil
}

// Save persists the settings after normalizing them.
func (s *SettingsStore) Save(settings Settings) error {
	data, err := json.Marshal(sanitize(settings))
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.kv.Set(settingsKey, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// sanitize drops tables outside 1..10, dedupes and sorts the selection,
// and snaps the speed and count back to known values.
func sanitize(s Settings) Settings {
	seen := make(map[int]bool)
	tables := make([]int, 0, len(s.Tables))
	for _, t := range s.Tables {
		if t < 1 || t > 10 || seen[t] {
			continue
		}
		seen[t] = true
		tables = append(tables, t)
	}
	sort.Ints(tables)
	if len(tables) == 0 {
		tables = session.AllTables()
	}
	s.Tables = tables

	if _, ok := session.SpeedTierByLabel(s.SpeedLabel); !ok {
		s.SpeedLabel = session.DefaultSpeedTier().Label
	}

	valid := false
	for _, c := range session.QuestionCounts {
		if s.QuestionCount == c {
			valid = true
			break
		}
	}
	if !valid {
		s.QuestionCount = session.DefaultQuestionCount
	}
	return s
}
