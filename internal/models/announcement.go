package models

import "time"

// Announcement is a club notice shown on the home feed.
// CreatedAt keeps the raw sheet value; CreatedTime is its best-effort
// parse used for ordering (zero when unparseable).
type Announcement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	IsPinned    bool      `json:"isPinned"`
	IsHidden    bool      `json:"isHidden"`
	CreatedAt   string    `json:"createdAt"`
	CreatedTime time.Time `json:"-"`
}

// createdAtLayouts covers the formats the sheet has been seen to hold.
var createdAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseCreatedAt parses a sheet timestamp, returning the zero time when no
// known layout matches.
func ParseCreatedAt(raw string) time.Time {
	for _, layout := range createdAtLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}
