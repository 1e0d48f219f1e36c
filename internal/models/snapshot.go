package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// The sheet endpoint serialises cell values as whatever the spreadsheet
// holds, so a numeric id may arrive as a JSON number and a flag as the
// string "true". The Flex types absorb that duck typing at the boundary.

// FlexString decodes a JSON string, number or bool into a string.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(data)
	return nil
}

// FlexInt decodes a JSON number or numeric string into an int. Anything
// else decodes to zero.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(int(n))
	return nil
}

// FlexBool decodes a JSON bool or the strings "true"/"false" (any case)
// into a bool. Anything else decodes to false.
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = false
		return nil
	}
	if string(data) == "true" {
		*f = true
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexBool(strings.EqualFold(strings.TrimSpace(s), "true"))
		return nil
	}
	*f = false
	return nil
}

// RawStudent is a roster row as fetched, before normalisation.
type RawStudent struct {
	ID    FlexString `json:"id"`
	Name  FlexString `json:"name"`
	Level FlexString `json:"level"`
	Room  FlexInt    `json:"room"`
}

// RawAttendance is an attendance ledger row as fetched.
type RawAttendance struct {
	Date      FlexString `json:"date"`
	StudentID FlexString `json:"studentId"`
	Status    FlexString `json:"status"`
}

// RawAnnouncement is an announcement row as fetched.
type RawAnnouncement struct {
	ID        FlexString `json:"id"`
	Title     FlexString `json:"title"`
	Content   FlexString `json:"content"`
	ImageURL  FlexString `json:"imageUrl"`
	IsPinned  FlexBool   `json:"isPinned"`
	IsHidden  FlexBool   `json:"isHidden"`
	CreatedAt FlexString `json:"createdAt"`
}

// RawAssignment is an assignment row as fetched.
type RawAssignment struct {
	ID           FlexString `json:"id"`
	Title        FlexString `json:"title"`
	Description  FlexString `json:"description"`
	DueDate      FlexString `json:"dueDate"`
	AllowedTypes FlexString `json:"allowedTypes"`
	CreatedAt    FlexString `json:"createdAt"`
}

// RawSubmission is a submission ledger row as fetched.
type RawSubmission struct {
	ID           FlexString `json:"id"`
	AssignmentID FlexString `json:"assignmentId"`
	StudentID    FlexString `json:"studentId"`
	Type         FlexString `json:"type"`
	Content      FlexString `json:"content"`
	SubmittedAt  FlexString `json:"submittedAt"`
	Status       FlexString `json:"status"`
}

// RawSnapshot is the consolidated sheet payload. A nil collection means the
// key was absent from the response, which is distinct from an empty one.
type RawSnapshot struct {
	Students      []RawStudent      `json:"students"`
	Attendance    []RawAttendance   `json:"attendance"`
	Announcements []RawAnnouncement `json:"announcements"`
	Assignments   []RawAssignment   `json:"assignments"`
	Submissions   []RawSubmission   `json:"submissions"`
}

// Snapshot is the normalised, typed form of a RawSnapshot. Nil collections
// carry the same absent-key meaning as in RawSnapshot.
type Snapshot struct {
	Students      []Student          `json:"students"`
	Attendance    []AttendanceRecord `json:"attendance"`
	Announcements []Announcement     `json:"announcements"`
	Assignments   []Assignment       `json:"assignments"`
	Submissions   []Submission       `json:"submissions"`
}
