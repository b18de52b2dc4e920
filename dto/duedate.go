package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DueDate parses dueDate from JSON as either date-only ("2006-01-02") or
// RFC3339. Set tells an omitted field apart from an explicit null or "",
// both of which clear the date.
type DueDate struct {
	Set   bool
	Value *time.Time
}

func (d *DueDate) UnmarshalJSON(data []byte) error {
	d.Set = true
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("dueDate: %w", err)
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.Value = nil
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			parsed = parsed.UTC()
			d.Value = &parsed
			return nil
		}
	}
	return fmt.Errorf("dueDate: use date (YYYY-MM-DD) or RFC3339 datetime")
}

func (d DueDate) Ptr() *time.Time { return d.Value }
