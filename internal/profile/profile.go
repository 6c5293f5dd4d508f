// Package profile stores the players: identity, avatar and coin balance.
// Profiles live under one key in the KeyValueStore as an ordered list, so
// creation order survives reloads and feeds the leaderboard.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/jsterk/tafel/internal/rewards"
	"github.com/jsterk/tafel/internal/storage"
)

// profilesKey is the KeyValueStore key holding the profile list.
const profilesKey = "profiles"

// ErrEmptyName rejects profile creation without a name.
var ErrEmptyName = errors.New("profile name is empty")

// Profile is one player.
type Profile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
	Coins       int    `json:"coins"`
}

// Defaults returns the starter profiles seeded on first launch.
func Defaults() []Profile {
	return []Profile{
		{ID: "feline", DisplayName: "Feline", Avatar: "🐱"},
		{ID: "julius", DisplayName: "Julius", Avatar: "🦁"},
	}
}

// Avatars is the pick list offered when creating a profile.
func Avatars() []string {
	return []string{"🐱", "🦁", "🐼", "🦊", "🐸", "🦄", "🐙", "🐯"}
}

// Store persists profiles in creation order.
type Store struct {
	kv storage.KeyValueStore
}

// NewStore returns a Store backed by kv.
func NewStore(kv storage.KeyValueStore) *Store {
	return &Store{kv: kv}
}

// All returns every profile in creation order. Missing or corrupt data
// counts as no profiles; entries without an id are dropped and negative
// balances are clamped on the way in.
func (s *Store) All() ([]Profile, error) {
	data, ok, err := s.kv.Get(profilesKey)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var profiles []Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, nil
	}
	kept := profiles[:0]
	for _, p := range profiles {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			continue
		}
		if strings.TrimSpace(p.DisplayName) == "" {
			p.DisplayName = capitalize(p.ID)
		}
		if p.Coins < 0 {
			p.Coins = 0
		}
		kept = append(kept, p)
	}
	return kept, nil
}

// Get finds one profile by id.
func (s *Store) Get(id string) (Profile, bool, error) {
	profiles, err := s.All()
	if err != nil {
		return Profile{}, false, err
	}
	for _, p := range profiles {
		if p.ID == id {
			return p, true, nil
		}
	}
	return Profile{}, false, nil
}

// Create adds a profile named after the player, starting at zero coins.
// The id is a slug of the name, numbered when taken.
func (s *Store) Create(name, avatar string) (Profile, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Profile{}, ErrEmptyName
	}
	profiles, err := s.All()
	if err != nil {
		return Profile{}, err
	}
	p := Profile{
		ID:          newIdentifier(trimmed, profiles),
		DisplayName: titleCase(trimmed),
		Avatar:      avatar,
	}
	if err := s.save(append(profiles, p)); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Save writes an updated profile back, matching on id.
func (s *Store) Save(updated Profile) error {
	profiles, err := s.All()
	if err != nil {
		return err
	}
	for i, p := range profiles {
		if p.ID == updated.ID {
			profiles[i] = updated
			return s.save(profiles)
		}
	}
	return fmt.Errorf("save profile: unknown id %q", updated.ID)
}

// Delete removes a profile. Clearing its score history is the caller's job.
func (s *Store) Delete(id string) error {
	profiles, err := s.All()
	if err != nil {
		return err
	}
	kept := profiles[:0]
	for _, p := range profiles {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(profiles) {
		return nil
	}
	return s.save(kept)
}

// AdjustCoins applies a coin delta to a profile, floors the balance at
// zero and persists it.
func (s *Store) AdjustCoins(id string, delta int) (Profile, error) {
	profiles, err := s.All()
	if err != nil {
		return Profile{}, err
	}
	for i, p := range profiles {
		if p.ID == id {
			p.Coins = rewards.AdjustCoins(p.Coins, delta)
			profiles[i] = p
			if err := s.save(profiles); err != nil {
				return Profile{}, err
			}
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("adjust coins: unknown profile %q", id)
}

// EnsureDefaults seeds the starter profiles when none exist and returns
// the current list.
func (s *Store) EnsureDefaults() ([]Profile, error) {
	profiles, err := s.All()
	if err != nil {
		return nil, err
	}
	if len(profiles) > 0 {
		return profiles, nil
	}
	seeded := Defaults()
	if err := s.save(seeded); err != nil {
		return nil, err
	}
	return seeded, nil
}

func (s *Store) save(profiles []Profile) error {
	data, err := json.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	if err := s.kv.Set(profilesKey, data); err != nil {
		return fmt.Errorf("save profiles: %w", err)
	}
	return nil
}

// newIdentifier slugs the name down to letters and digits and numbers the
// result until it is free.
func newIdentifier(name string, existing []Profile) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	base := b.String()
	if base == "" {
		base = "player"
	}
	taken := make(map[string]bool, len(existing))
	for _, p := range existing {
		taken[p.ID] = true
	}
	candidate := base
	for suffix := 1; taken[candidate]; suffix++ {
		candidate = fmt.Sprintf("%s%d", base, suffix)
	}
	return candidate
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(strings.ToLower(w))
	}
	return strings.Join(words, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
