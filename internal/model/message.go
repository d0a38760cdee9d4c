package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp layouts for the JSON wire format: ISO-8601, UTC, no offset.
const (
	timestampLayout      = "2006-01-02T15:04:05"
	timestampMicroLayout = "2006-01-02T15:04:05.000000"
)

// Message represents a message board post
type Message struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Body      string    `gorm:"not null"`
	Username  string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName maps Message onto the messages table.
func (Message) TableName() string {
	return "messages"
}

type messageJSON struct {
	ID        int64  `json:"id"`
	Body      string `json:"body"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// MarshalJSON renders the message with offset-free timestamps.
func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(messageJSON{
		ID:        m.ID,
		Body:      m.Body,
		Username:  m.Username,
		CreatedAt: FormatTimestamp(m.CreatedAt),
		UpdatedAt: FormatTimestamp(m.UpdatedAt),
	})
}

// UnmarshalJSON parses the shape produced by MarshalJSON.
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw messageJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	createdAt, err := ParseTimestamp(raw.CreatedAt)
	if err != nil {
		return fmt.Errorf("created_at: %w", err)
	}
	updatedAt, err := ParseTimestamp(raw.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updated_at: %w", err)
	}

	*m = Message{
		ID:        raw.ID,
		Body:      raw.Body,
		Username:  raw.Username,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
	return nil
}

// FormatTimestamp formats t in UTC without an offset. Fractional seconds
// appear as six digits, and only when the microsecond part is non-zero.
func FormatTimestamp(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format(timestampLayout)
	}
	return t.Format(timestampMicroLayout)
}

// ParseTimestamp is the inverse of FormatTimestamp. The result is in UTC.
func ParseTimestamp(s string) (time.Time, error) {
	// Parsing accepts an optional fractional second after the seconds field.
	return time.ParseInLocation(timestampLayout, s, time.UTC)
}
