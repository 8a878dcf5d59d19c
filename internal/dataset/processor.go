package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/soltixdb/salescast/internal/analytics"
)

// FillMethod selects how missing cells are imputed
type FillMethod string

const (
	// FillMean replaces missing cells of numeric columns with the column mean
	FillMean FillMethod = "mean"
	// FillForward copies the previous non-missing cell down every column
	FillForward FillMethod = "forward_fill"
	// FillNone leaves missing cells untouched
	FillNone FillMethod = "none"
)

// Frequency is a resampling bucket size
type Frequency string

const (
	Daily   Frequency = "D"
	Weekly  Frequency = "W" // weeks ending Sunday
	Monthly Frequency = "M" // labelled by month end
)

// ParseFrequency accepts D, W or M in any case
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(strings.ToUpper(strings.TrimSpace(s))) {
	case Daily:
		return Daily, nil
	case Weekly:
		return Weekly, nil
	case Monthly, "ME":
		return Monthly, nil
	default:
		return "", fmt.Errorf("unsupported frequency: %q (supported: D, W, M)", s)
	}
}

// dateLayouts are tried in order when parsing date cells
var dateLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// ParseDate parses a date cell using the supported layouts
func ParseDate(cell string) (time.Time, error) {
	cell = strings.TrimSpace(cell)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date: %q", cell)
}

// Processor cleans a private copy of a table
type Processor struct {
	table *Table
}

// NewProcessor copies t so the caller's table is never modified
func NewProcessor(t *Table) *Processor {
	return &Processor{table: t.Clone()}
}

// Table returns the processed table
func (p *Processor) Table() *Table {
	return p.table
}

// DropDuplicates removes rows identical to an earlier row and returns how many were dropped
func (p *Processor) DropDuplicates() int {
	seen := make(map[string]bool, len(p.table.Rows))
	kept := p.table.Rows[:0]
	for _, r := range p.table.Rows {
		// Unit separator cannot appear in CSV-sourced cells joined this way
		key := strings.Join(r, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, r)
	}
	dropped := len(p.table.Rows) - len(kept)
	p.table.Rows = kept
	return dropped
}

// FillMissing imputes missing cells and returns how many were filled
func (p *Processor) FillMissing(method FillMethod) (int, error) {
	switch method {
	case FillMean:
		return p.fillMean()
	case FillForward:
		return p.fillForward(), nil
	case FillNone, "":
		return 0, nil
	default:
		return 0, fmt.Errorf("unsupported fill method: %q (supported: mean, forward_fill, none)", method)
	}
}

func (p *Processor) fillMean() (int, error) {
	filled := 0
	for _, name := range p.table.NumericColumns() {
		values, err := p.table.Float64Column(name)
		if err != nil {
			return filled, err
		}
		stats, err := analytics.Describe(values)
		if err != nil {
			// Column with no values at all has no mean to fill with
			continue
		}
		idx, _ := p.table.ColumnIndex(name)
		fill := strconv.FormatFloat(stats.Mean, 'f', -1, 64)
		for _, r := range p.table.Rows {
			if IsMissing(r[idx]) {
				r[idx] = fill
				filled++
			}
		}
	}
	return filled, nil
}

func (p *Processor) fillForward() int {
	filled := 0
	for idx := range p.table.Columns {
		last := ""
		have := false
		for _, r := range p.table.Rows {
			if IsMissing(r[idx]) {
				if have {
					r[idx] = last
					filled++
				}
				continue
			}
			last = r[idx]
			have = true
		}
	}
	return filled
}

// Aggregate sums valueCol into contiguous freq buckets keyed by dateCol.
// Buckets with no rows between the first and last date sum to 0; missing values are skipped.
func (p *Processor) Aggregate(dateCol, valueCol string, freq Frequency) (analytics.TimeSeriesData, error) {
	dates, err := p.table.Column(dateCol)
	if err != nil {
		return nil, err
	}
	values, err := p.table.Float64Column(valueCol)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return analytics.TimeSeriesData{}, nil
	}

	sums := make(map[time.Time]float64)
	var first, last time.Time
	for i, cell := range dates {
		t, err := ParseDate(cell)
		if err != nil {
			return nil, fmt.Errorf("column %s row %d: %w", dateCol, i+1, err)
		}
		label := bucketLabel(t, freq)
		if i == 0 || label.Before(first) {
			first = label
		}
		if i == 0 || label.After(last) {
			last = label
		}
		if !math.IsNaN(values[i]) {
			sums[label] += values[i]
		} else if _, ok := sums[label]; !ok {
			sums[label] = 0
		}
	}

	var out analytics.TimeSeriesData
	for label := first; !label.After(last); label = nextLabel(label, freq) {
		out = append(out, analytics.TimeSeriesPoint{Time: label, Value: sums[label]})
	}
	return out, nil
}

// bucketLabel maps t to the label of its bucket at UTC midnight. The calendar day is
// taken as written in the cell, so rows with different offsets share a bucket.
func bucketLabel(t time.Time, freq Frequency) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	switch freq {
	case Weekly:
		return day.AddDate(0, 0, (7-int(day.Weekday()))%7)
	case Monthly:
		return time.Date(day.Year(), day.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

func nextLabel(label time.Time, freq Frequency) time.Time {
	switch freq {
	case Weekly:
		return label.AddDate(0, 0, 7)
	case Monthly:
		return time.Date(label.Year(), label.Month()+2, 0, 0, 0, 0, 0, time.UTC)
	default:
		return label.AddDate(0, 0, 1)
	}
}
