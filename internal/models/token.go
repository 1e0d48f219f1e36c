package models

import "github.com/golang-jwt/jwt/v5"

// TeacherClaims is the capability token issued by the teacher gate. The
// gate is a UX barrier shared by all teachers, so the only claim that
// matters is the teacher flag.
type TeacherClaims struct {
	Teacher bool `json:"teacher"`
	jwt.RegisteredClaims
}
