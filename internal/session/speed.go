package session

import "time"

// SpeedTier is a named time-limit preset for tests. The label doubles as
// the key for the finish bonus, so it is stored verbatim in results.
type SpeedTier struct {
	Label       string
	Icon        string
	Description string
	Limit       time.Duration
}

// Presets run slowest to fastest. Tighter limits pay a bigger bonus.
var speedTiers = []SpeedTier{
	{Label: "Slak", Icon: "🐌", Description: "Lekker rustig", Limit: 10 * time.Minute},
	{Label: "Schildpad", Icon: "🐢", Description: "Rustig racen", Limit: 8 * time.Minute},
	{Label: "Haas", Icon: "🐇", Description: "Supersnel", Limit: 7 * time.Minute},
	{Label: "Cheeta", Icon: "🐆", Description: "Ultieme uitdaging", Limit: 5 * time.Minute},
}

// SpeedTiers returns the selectable presets, slowest first.
func SpeedTiers() []SpeedTier {
	tiers := make([]SpeedTier, len(speedTiers))
	copy(tiers, speedTiers)
	return tiers
}

// DefaultSpeedTier is the preset a fresh setup starts on.
func DefaultSpeedTier() SpeedTier {
	return speedTiers[1]
}

// SpeedTierByLabel looks up a preset by label, for restoring saved settings.
func SpeedTierByLabel(label string) (SpeedTier, bool) {
	for _, tier := range speedTiers {
		if tier.Label == label {
			return tier, true
		}
	}
	return SpeedTier{}, false
}

// QuestionCounts are the selectable test lengths.
var QuestionCounts = []int{30, 50, 100}

// DefaultQuestionCount is the test length a fresh setup starts on.
const DefaultQuestionCount = 50

// AllTables returns the full selectable range, tables 1 through 10.
func AllTables() []int {
	tables := make([]int, 10)
	for i := range tables {
		tables[i] = i + 1
	}
	return tables
}
