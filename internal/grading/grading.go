// Package grading holds the pure derivations over raw score and attendance
// numbers. No storage or network access happens here.
package grading

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// Band maps a minimum total score to a letter grade.
type Band struct {
	Min   int    `toml:"min"`
	Grade string `toml:"grade"`
}

// Label maps a minimum attendance percentage to a status label.
type Label struct {
	Min  int    `toml:"min"`
	Name string `toml:"name"`
}

// Scale carries the adjustable thresholds for grade banding and attendance
// status labels.
type Scale struct {
	Bands  []Band  `toml:"bands"`
	Labels []Label `toml:"attendance_labels"`
}

// DefaultScale returns the shipped thresholds.
func DefaultScale() *Scale {
	return &Scale{
		Bands: []Band{
			{Min: 80, Grade: "A"},
			{Min: 70, Grade: "B"},
			{Min: 60, Grade: "C"},
			{Min: 0, Grade: "D"},
		},
		Labels: []Label{
			{Min: 90, Name: "Excellent"},
			{Min: 75, Name: "Good"},
			{Min: 60, Name: "Fair"},
			{Min: 0, Name: "Poor"},
		},
	}
}

// LoadScale reads thresholds from a TOML file, falling back to the defaults
// when the file is absent.
func LoadScale(path string) (*Scale, error) {
	if path == "" {
		return DefaultScale(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultScale(), nil
		}
		return nil, fmt.Errorf("read grading file: %w", err)
	}
	scale := &Scale{}
	if err := toml.Unmarshal(raw, scale); err != nil {
		return nil, fmt.Errorf("parse grading file: %w", err)
	}
	if len(scale.Bands) == 0 {
		scale.Bands = DefaultScale().Bands
	}
	if len(scale.Labels) == 0 {
		scale.Labels = DefaultScale().Labels
	}
	scale.normalize()
	return scale, nil
}

func (s *Scale) normalize() {
	sort.Slice(s.Bands, func(i, j int) bool { return s.Bands[i].Min > s.Bands[j].Min })
	sort.Slice(s.Labels, func(i, j int) bool { return s.Labels[i].Min > s.Labels[j].Min })
}

// Grade maps a total score onto the configured letter bands.
func (s *Scale) Grade(total int) string {
	for _, band := range s.Bands {
		if total >= band.Min {
			return band.Grade
		}
	}
	if len(s.Bands) == 0 {
		return ""
	}
	return s.Bands[len(s.Bands)-1].Grade
}

// StatusLabel maps an attendance percentage onto the configured labels.
func (s *Scale) StatusLabel(percentage int) string {
	for _, label := range s.Labels {
		if percentage >= label.Min {
			return label.Name
		}
	}
	if len(s.Labels) == 0 {
		return ""
	}
	return s.Labels[len(s.Labels)-1].Name
}

// Total sums the class and exam components, clamping each to non-negative.
// The stored total is always this sum; there is no independent override.
func Total(classScore, examScore int) int {
	if classScore < 0 {
		classScore = 0
	}
	if examScore < 0 {
		examScore = 0
	}
	return classScore + examScore
}

// Percentage computes round(present/total*100), or 0 when total is 0.
func Percentage(present, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(present) / float64(total) * 100))
}

// ApplyAttendanceEdit folds edited present/total values onto the current
// pair. Clamping is bidirectional: lowering total pulls present down with
// it, and raising present pulls total up, so either field can be edited
// first without an invalid intermediate state. A nil pointer leaves that
// field as stored.
func ApplyAttendanceEdit(present, total int, newPresent, newTotal *int) (int, int) {
	if newTotal != nil {
		total = *newTotal
		if total < 0 {
			total = 0
		}
		if present > total {
			present = total
		}
	}
	if newPresent != nil {
		present = *newPresent
		if present < 0 {
			present = 0
		}
		if present > total {
			total = present
		}
	}
	return present, total
}
