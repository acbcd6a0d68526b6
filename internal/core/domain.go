package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type (
	// Date is a calendar date without a time component. The zero value is
	// invalid; build one with NewDate or ParseDate.
	Date struct {
		time.Time
	}

	// BudgetSummary identifies a budget by id and human-chosen name.
	BudgetSummary struct {
		ID   string
		Name string
	}

	// Category is a read-only snapshot of a budget category. Monetary
	// fields are in milliunits. GoalCadence and GoalTarget are nil when
	// the category has no goal.
	Category struct {
		ID                string
		Name              string
		CategoryGroupName string // empty when the category has no group
		Budgeted          Milliunits
		Balance           Milliunits
		GoalCadence       *int
		GoalTarget        *Milliunits
		Hidden            bool
	}

	// CategoryGroup holds categories in source order.
	CategoryGroup struct {
		ID         string
		Name       string
		Hidden     bool
		Deleted    bool
		Categories []Category
	}

	// Transaction is a single budget transaction. A negative amount is an
	// outflow. When Subtransactions is non-empty the transaction is split
	// and its own CategoryName carries the "Split" sentinel.
	Transaction struct {
		ID              string
		Date            Date
		Amount          Milliunits
		PayeeName       string // empty when unknown
		CategoryName    string // empty when uncategorized
		Subtransactions []SubTransaction
	}

	// SubTransaction is one share of a split transaction. An empty
	// PayeeName inherits the parent's payee.
	SubTransaction struct {
		Amount       Milliunits
		PayeeName    string
		CategoryName string
	}

	// WatchEntry pairs a category group name with its display color.
	WatchEntry struct {
		Group string
		Color string
	}

	// WatchList is the ordered set of category groups to report on.
	// Insertion order drives rendering order downstream.
	WatchList []WatchEntry
)

var (
	ErrInvalidDate    = errors.New("invalid date")
	ErrMalformedInput = errors.New("malformed input")
)

const dateLayout = "2006-01-02"

// NewDate builds a Date from year, month and day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// Today returns the current date in UTC.
func Today() Date {
	y, m, d := time.Now().UTC().Date()
	return NewDate(y, int(m), d)
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// Within reports whether d lies in the inclusive interval [start, end].
func (d Date) Within(start, end Date) bool {
	return !d.Before(start.Time) && !d.After(end.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Color returns the display color configured for a group.
func (w WatchList) Color(group string) (string, bool) {
	for _, e := range w {
		if e.Group == group {
			return e.Color, true
		}
	}
	return "", false
}

// Contains reports whether a group is on the watch list.
func (w WatchList) Contains(group string) bool {
	_, ok := w.Color(group)
	return ok
}

// Groups returns the watched group names in insertion order.
func (w WatchList) Groups() []string {
	names := make([]string, len(w))
	for i, e := range w {
		names[i] = e.Group
	}
	return names
}

// MarshalJSON encodes the watch list as a JSON object whose key order
// matches the list order.
func (w WatchList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range w {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Group)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Color)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the watch list, preserving the
// key order found in the document. encoding/json maps would lose it.
func (w *WatchList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("watch list must be a JSON object")
	}

	var entries WatchList
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("watch list key must be a string")
		}
		var color string
		if err := dec.Decode(&color); err != nil {
			return fmt.Errorf("watch list value for %q must be a string: %w", key, err)
		}
		entries = append(entries, WatchEntry{Group: key, Color: color})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*w = entries
	return nil
}
