package score

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestTableStatRecord(t *testing.T) {
	var stat TableStat
	stat.Record(true, 2.0)
	stat.Record(false, 4.0)
	stat.Record(true, 3.0)

	if stat.Attempts != 3 || stat.Correct != 2 || stat.Incorrect != 1 {
		t.Errorf("stat = %+v, want 3 attempts, 2 correct, 1 incorrect", stat)
	}
	if stat.TotalTime != 9.0 {
		t.Errorf("TotalTime = %v, want 9.0", stat.TotalTime)
	}
	if got := stat.AverageTime(); got != 3.0 {
		t.Errorf("AverageTime = %v, want 3.0", got)
	}
}

func TestTableStatAverageTimeEmpty(t *testing.T) {
	var stat TableStat
	if got := stat.AverageTime(); got != 0 {
		t.Errorf("AverageTime on empty stat = %v, want 0", got)
	}
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name     string
		answered int
		correct  int
		want     float64
	}{
		{"nothing answered", 0, 0, 0},
		{"all correct", 10, 10, 1.0},
		{"half correct", 10, 5, 0.5},
		{"none correct", 4, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := TestResult{Answered: tt.answered, Correct: tt.correct}
			got := r.Accuracy()
			if got != tt.want {
				t.Errorf("Accuracy = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("Accuracy = %v outside [0, 1]", got)
			}
		})
	}
}

func TestRemainingSeconds(t *testing.T) {
	r := TestResult{TimeLimitSeconds: 60, ElapsedSeconds: 45.5}
	if got := r.RemainingSeconds(); got != 14.5 {
		t.Errorf("RemainingSeconds = %v, want 14.5", got)
	}

	over := TestResult{TimeLimitSeconds: 60, ElapsedSeconds: 75}
	if got := over.RemainingSeconds(); got != 0 {
		t.Errorf("RemainingSeconds past the limit = %v, want 0", got)
	}
}

func TestResultRoundTrip(t *testing.T) {
	original := TestResult{
		ProfileID:        "p-1",
		ProfileName:      "Feline",
		Tables:           []int{7, 3, 9},
		QuestionCount:    50,
		Answered:         48,
		Correct:          40,
		Incorrect:        8,
		TimeLimitSeconds: 480,
		ElapsedSeconds:   412.75,
		Timestamp:        time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
		TableStats: map[int]TableStat{
			3: {Attempts: 20, Correct: 18, Incorrect: 2, TotalTime: 80.5},
			7: {Attempts: 28, Correct: 22, Incorrect: 6, TotalTime: 150.25},
		},
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded TestResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !decoded.Timestamp.Equal(original.Timestamp) {
		t.Errorf("timestamp = %v, want %v", decoded.Timestamp, original.Timestamp)
	}
	decoded.Timestamp = original.Timestamp
	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, original)
	}
}

func TestSlowestTables(t *testing.T) {
	r := TestResult{
		TableStats: map[int]TableStat{
			2: {Attempts: 4, TotalTime: 8},    // avg 2.0
			5: {Attempts: 2, TotalTime: 9},    // avg 4.5
			8: {Attempts: 3, TotalTime: 10.5}, // avg 3.5
			9: {},                             // never attempted
		},
	}
	got := r.SlowestTables()
	want := []int{5, 8}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SlowestTables = %v, want %v", got, want)
	}
}

func TestTrickyTablesPerResult(t *testing.T) {
	r := TestResult{
		TableStats: map[int]TableStat{
			4: {Attempts: 5, Incorrect: 1},
			6: {Attempts: 5, Incorrect: 3},
			7: {Attempts: 5},
		},
	}
	got := r.TrickyTables()
	want := []int{6, 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TrickyTables = %v, want %v", got, want)
	}
}
