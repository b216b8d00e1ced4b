package holidays

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// anchor is the DTSTART used for rules that do not carry their own
var anchor = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// Definition is a named public holiday with an RRULE describing when it occurs
type Definition struct {
	Name  string `yaml:"name" json:"name" validate:"required"`
	RRule string `yaml:"rrule" json:"rrule" validate:"required"`
}

type holiday struct {
	name string
	rule *rrule.RRule
}

// Calendar answers whether a date is a public holiday
type Calendar struct {
	holidays []holiday
}

// DefaultAustralianHolidays returns the national public holidays observed across Australia
func DefaultAustralianHolidays() []Definition {
	return []Definition{
		{Name: "New Year's Day", RRule: "FREQ=YEARLY;BYMONTH=1;BYMONTHDAY=1"},
		{Name: "Australia Day", RRule: "FREQ=YEARLY;BYMONTH=1;BYMONTHDAY=26"},
		{Name: "Good Friday", RRule: "FREQ=YEARLY;BYEASTER=-2"},
		{Name: "Easter Saturday", RRule: "FREQ=YEARLY;BYEASTER=-1"},
		{Name: "Easter Sunday", RRule: "FREQ=YEARLY;BYEASTER=0"},
		{Name: "Easter Monday", RRule: "FREQ=YEARLY;BYEASTER=1"},
		{Name: "Anzac Day", RRule: "FREQ=YEARLY;BYMONTH=4;BYMONTHDAY=25"},
		{Name: "King's Birthday", RRule: "FREQ=YEARLY;BYMONTH=6;BYDAY=+2MO"},
		{Name: "Christmas Day", RRule: "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=25"},
		{Name: "Boxing Day", RRule: "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=26"},
	}
}

// ParseRule parses an RRULE string, anchoring it at 1970-01-01 UTC when it has no DTSTART
func ParseRule(rule string) (*rrule.RRule, error) {
	option, err := rrule.StrToROption(strings.TrimSpace(rule))
	if err != nil {
		return nil, err
	}

	if option.Dtstart.IsZero() {
		option.Dtstart = anchor
	}

	return rrule.NewRRule(*option)
}

// NewCalendar builds a calendar from holiday definitions. Earlier definitions win when
// two holidays fall on the same date.
func NewCalendar(definitions []Definition) (*Calendar, error) {
	calendar := &Calendar{holidays: make([]holiday, 0, len(definitions))}

	for i, def := range definitions {
		rule, err := ParseRule(def.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule for holiday %d (%s): %w", i, def.Name, err)
		}
		calendar.holidays = append(calendar.holidays, holiday{name: def.Name, rule: rule})
	}

	return calendar, nil
}

// Lookup returns the name of the public holiday falling on t's calendar date, read in t's own location
func (c *Calendar) Lookup(t time.Time) (string, bool) {
	if c == nil {
		return "", false
	}

	year, month, day := t.Date()

	// Search a window either side of the date so rules anchored in another location still match
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	searchStart := date.AddDate(0, 0, -1)
	searchEnd := date.AddDate(0, 0, 2)

	for _, h := range c.holidays {
		for _, occurrence := range h.rule.Between(searchStart, searchEnd, true) {
			y, m, d := occurrence.Date()
			if y == year && m == month && d == day {
				return h.name, true
			}
		}
	}

	return "", false
}

// Len returns the number of holidays in the calendar
func (c *Calendar) Len() int {
	if c == nil {
		return 0
	}
	return len(c.holidays)
}
