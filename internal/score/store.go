package score

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jsterk/tafel/internal/storage"
)

// scoresKey is the KeyValueStore key holding every recorded result.
const scoresKey = "scores"

// Store persists TestResults as an append-only map from profile id to an
// ordered record list. Individual entries are never edited; removal is
// whole-profile or whole-store only.
type Store struct {
	kv storage.KeyValueStore
}

// NewStore returns a Store backed by kv.
func NewStore(kv storage.KeyValueStore) *Store {
	return &Store{kv: kv}
}

// Record appends the result to its profile's history and persists
// synchronously.
func (s *Store) Record(result TestResult) error {
	raw, err := s.load()
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	raw[result.ProfileID] = append(raw[result.ProfileID], encoded)
	return s.save(raw)
}

// ResultsFor returns the stored results for one profile, oldest first.
// Records that fail schema validation are dropped individually.
func (s *Store) ResultsFor(profileID string) ([]TestResult, error) {
	raw, err := s.load()
	if err != nil {
		return nil, err
	}
	return decodeResults(raw[profileID]), nil
}

// All returns every profile's results keyed by profile id. Profiles whose
// records all failed validation are omitted.
func (s *Store) All() (map[string][]TestResult, error) {
	raw, err := s.load()
	if err != nil {
		return nil, err
	}
	all := make(map[string][]TestResult, len(raw))
	for id, records := range raw {
		if results := decodeResults(records); len(results) > 0 {
			all[id] = results
		}
	}
	return all, nil
}

// Clear removes one profile's history.
func (s *Store) Clear(profileID string) error {
	raw, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := raw[profileID]; !ok {
		return nil
	}
	delete(raw, profileID)
	return s.save(raw)
}

// ClearAll removes every stored result.
func (s *Store) ClearAll() error {
	if err := s.kv.Delete(scoresKey); err != nil {
		return fmt.Errorf("clear scores: %w", err)
	}
	return nil
}

// load returns the raw per-profile record lists currently stored. A corrupt
// document counts as empty data, not an error.
func (s *Store) load() (map[string][]json.RawMessage, error) {
	data, ok, err := s.kv.Get(scoresKey)
	if err != nil {
		return nil, fmt.Errorf("load scores: %w", err)
	}
	raw := make(map[string][]json.RawMessage)
	if !ok {
		return raw, nil
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return make(map[string][]json.RawMessage), nil
	}
	return raw, nil
}

func (s *Store) save(raw map[string][]json.RawMessage) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	if err := s.kv.Set(scoresKey, data); err != nil {
		return fmt.Errorf("save scores: %w", err)
	}
	return nil
}

// decodeResults parses raw records, skipping any that fail validation or
// decoding, and orders the survivors oldest first.
func decodeResults(records []json.RawMessage) []TestResult {
	results := make([]TestResult, 0, len(records))
	for _, record := range records {
		if err := validateRecord(record); err != nil {
			continue
		}
		var r TestResult
		if err := json.Unmarshal(record, &r); err != nil {
			continue
		}
		results = append(results, r)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Timestamp.Before(results[j].Timestamp)
	})
	return results
}
