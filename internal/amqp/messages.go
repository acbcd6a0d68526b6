package amqp

import (
	"encoding/json"
	"time"
)

// ReportPublishedMessage announces that a weekly report was generated.
// It carries the week span and headline total, not the rows; consumers
// interested in detail read the history database.
type ReportPublishedMessage struct {
	BudgetID   string    `json:"budget_id"`
	WeekStart  string    `json:"week_start"`
	WeekEnd    string    `json:"week_end"`
	WeekNumber int       `json:"week_number"`
	TotalSpent float64   `json:"total_spent"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewReportPublishedMessage creates a report event stamped with the
// current time.
func NewReportPublishedMessage(budgetID, weekStart, weekEnd string, weekNumber int, totalSpent float64) *ReportPublishedMessage {
	return &ReportPublishedMessage{
		BudgetID:   budgetID,
		WeekStart:  weekStart,
		WeekEnd:    weekEnd,
		WeekNumber: weekNumber,
		TotalSpent: totalSpent,
		Timestamp:  time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ReportPublishedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportPublishedMessageFromJSON creates a message from JSON bytes.
func ReportPublishedMessageFromJSON(data []byte) (*ReportPublishedMessage, error) {
	var msg ReportPublishedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
