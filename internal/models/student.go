package models

// Club levels as they appear in the sheet.
const (
	LevelM4 = "ม.4"
	LevelM5 = "ม.5"
	LevelM6 = "ม.6"
)

// Levels enumerates the accepted levels in display order.
var Levels = []string{LevelM4, LevelM5, LevelM6}

const (
	RoomMin = 1
	RoomMax = 13
)

// Student is one member of the club roster. ID is the five-digit student
// number used everywhere as the join key.
type Student struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level"`
	Room  int    `json:"room"`
}

// ValidLevel reports whether level is one of the accepted club levels.
func ValidLevel(level string) bool {
	for _, l := range Levels {
		if l == level {
			return true
		}
	}
	return false
}

// StudentFilter narrows roster listings.
type StudentFilter struct {
	Level string
	Room  int
}

// Matches reports whether the student passes the filter.
func (f StudentFilter) Matches(s Student) bool {
	if f.Level != "" && s.Level != f.Level {
		return false
	}
	if f.Room > 0 && s.Room != f.Room {
		return false
	}
	return true
}
