// Package schedule classifies attendance events against per-category work hours.
package schedule

import (
	"fmt"
	"strings"
	"time"

	"PRESENSI/helper"
	"PRESENSI/models"
)

type Category string

const (
	CategoryIntern         Category = "Mahasiswa Internship"
	CategoryStaff          Category = "Staff"
	CategoryGeneralManager Category = "General Manager"
	CategoryDefault        Category = "DEFAULT"
)

var knownCategories = []Category{CategoryIntern, CategoryStaff, CategoryGeneralManager}

// ParseCategory maps free text onto a known category. Case, diacritics and
// the choice between spaces and underscores do not matter; anything else
// falls back to CategoryDefault.
func ParseCategory(raw string) Category {
	for _, c := range knownCategories {
		if string(c) == raw {
			return c
		}
	}

	key := categoryKey(raw)
	for _, c := range knownCategories {
		if categoryKey(string(c)) == key {
			return c
		}
	}
	return CategoryDefault
}

func categoryKey(s string) string {
	s = helper.RemoveDiacritics(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

type Status string

const (
	StatusOnTime     Status = "on_time"
	StatusLate       Status = "late"
	StatusEarlyLeave Status = "early_leave"
	StatusNA         Status = "n/a"
)

// Label is the text shown on the kiosk and the attendance table.
func (s Status) Label() string {
	switch s {
	case StatusOnTime:
		return "Tepat Waktu"
	case StatusLate:
		return "Terlambat"
	case StatusEarlyLeave:
		return "Pulang Cepat"
	default:
		return "N/A"
	}
}

// TimeOfDay is a wall clock time with second granularity.
type TimeOfDay int

func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(time.TimeOnly, s)
	if err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	return NewTimeOfDay(t.Hour(), t.Minute(), t.Second()), nil
}

func timeOfDayOf(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute(), t.Second())
}

func (t TimeOfDay) String() string {
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s/60%60, s%60)
}

// Rule holds the cutoffs of one category: arrive by InBy, leave at or after OutFrom.
type Rule struct {
	InBy    TimeOfDay
	OutFrom TimeOfDay
}

func DefaultRules() map[Category]Rule {
	return map[Category]Rule{
		CategoryIntern:         {InBy: NewTimeOfDay(9, 0, 0), OutFrom: NewTimeOfDay(15, 0, 0)},
		CategoryStaff:          {InBy: NewTimeOfDay(8, 30, 0), OutFrom: NewTimeOfDay(17, 30, 0)},
		CategoryGeneralManager: {InBy: NewTimeOfDay(8, 30, 0), OutFrom: NewTimeOfDay(17, 30, 0)},
		CategoryDefault:        {InBy: NewTimeOfDay(9, 0, 0), OutFrom: NewTimeOfDay(15, 0, 0)},
	}
}

type Policy struct {
	rules map[Category]Rule
	loc   *time.Location
}

// NewPolicy requires a rule for CategoryDefault.
func NewPolicy(rules map[Category]Rule, loc *time.Location) (*Policy, error) {
	if _, ok := rules[CategoryDefault]; !ok {
		return nil, fmt.Errorf("schedule rules must contain %s", CategoryDefault)
	}
	if loc == nil {
		loc = time.Local
	}
	return &Policy{rules: rules, loc: loc}, nil
}

// RuleFor never fails: unknown categories get the default rule.
func (p *Policy) RuleFor(category string) Rule {
	if rule, ok := p.rules[ParseCategory(category)]; ok {
		return rule
	}
	return p.rules[CategoryDefault]
}

// Classify compares the local time of day of eventTime against the category cutoffs.
func (p *Policy) Classify(category string, direction models.Direction, eventTime time.Time) Status {
	rule := p.RuleFor(category)
	tod := timeOfDayOf(eventTime.In(p.loc))

	switch direction {
	case models.DirectionIn:
		if tod <= rule.InBy {
			return StatusOnTime
		}
		return StatusLate
	case models.DirectionOut:
		if tod >= rule.OutFrom {
			return StatusOnTime
		}
		return StatusEarlyLeave
	default:
		return StatusNA
	}
}
