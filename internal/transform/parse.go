package transform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"econcharts/internal/frame"
)

// KeyParser turns a provider time string into a canonical chronological key.
type KeyParser interface {
	Parse(s string) (time.Time, error)
	Granularity() frame.Granularity
}

type yearParser struct{}

// ParseYear parses "2021" into a yearly key.
var ParseYear KeyParser = yearParser{}

func (yearParser) Parse(s string) (time.Time, error) {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || y < 1 || y > 9999 {
		return time.Time{}, fmt.Errorf("invalid year %q", s)
	}
	return frame.Year(y), nil
}

func (yearParser) Granularity() frame.Granularity { return frame.Yearly }

type dateParser struct{}

// ParseDate parses "2021-03-31" into a daily key.
var ParseDate KeyParser = dateParser{}

func (dateParser) Parse(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

func (dateParser) Granularity() frame.Granularity { return frame.Daily }
