package models

// AttendanceStatus is stored with the Thai literals the sheet uses.
type AttendanceStatus string

const (
	StatusPresent  AttendanceStatus = "มา"
	StatusAbsent   AttendanceStatus = "ขาด"
	StatusLeave    AttendanceStatus = "ลา"
	StatusActivity AttendanceStatus = "กิจกรรม"
)

// Valid reports whether s is one of the four recorded statuses.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLeave, StatusActivity:
		return true
	}
	return false
}

// AttendanceRecord is one student's status on one calendar day.
// Date is normalised to "2006-01-02".
type AttendanceRecord struct {
	Date      string           `json:"date"`
	StudentID string           `json:"studentId"`
	Status    AttendanceStatus `json:"status"`
}

// AttendanceEntry is the day-sheet row exchanged with clients.
type AttendanceEntry struct {
	StudentID string           `json:"studentId"`
	Status    AttendanceStatus `json:"status"`
}

// AttendanceTally counts one student's recorded statuses across all days.
type AttendanceTally struct {
	Present  int `json:"present"`
	Absent   int `json:"absent"`
	Leave    int `json:"leave"`
	Activity int `json:"activity"`
}

// Effective is the number of sessions that count toward the grade:
// absences are the only status that does not.
func (t AttendanceTally) Effective() int {
	return t.Present + t.Leave + t.Activity
}

// Total is the number of days with any recorded status.
func (t AttendanceTally) Total() int {
	return t.Present + t.Absent + t.Leave + t.Activity
}

// Add counts one more record of the given status. Unknown statuses are
// ignored.
func (t *AttendanceTally) Add(status AttendanceStatus) {
	switch status {
	case StatusPresent:
		t.Present++
	case StatusAbsent:
		t.Absent++
	case StatusLeave:
		t.Leave++
	case StatusActivity:
		t.Activity++
	}
}
