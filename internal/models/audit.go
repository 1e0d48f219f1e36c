package models

import (
	"encoding/json"
	"time"
)

// AuditEntry records one mutation forwarded to the sheet. The log is
// operator observability only; the sheet stays the state of record.
type AuditEntry struct {
	ID        string          `db:"id" json:"id"`
	Mode      string          `db:"mode" json:"mode"`
	Payload   json.RawMessage `db:"payload" json:"payload"`
	Actor     string          `db:"actor" json:"actor"`
	Outcome   string          `db:"outcome" json:"outcome"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
