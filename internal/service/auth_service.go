package service

import (
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/nbdwit/club-api/internal/models"
	"github.com/nbdwit/club-api/pkg/config"
	appErrors "github.com/nbdwit/club-api/pkg/errors"
)

// AuthService implements the teacher gate. The access code is shared by
// all teachers; passing it grants a short-lived capability token. This is
// a UX barrier, not a security boundary, and is documented as such.
type AuthService struct {
	accessCode     string
	accessCodeHash string
	secret         []byte
	expiration     time.Duration
	logger         *zap.Logger
}

// NewAuthService constructs the teacher gate.
func NewAuthService(cfg config.TeacherGateConfig, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		accessCode:     cfg.AccessCode,
		accessCodeHash: cfg.AccessCodeHash,
		secret:         []byte(cfg.JWTSecret),
		expiration:     cfg.JWTExpiration,
		logger:         logger,
	}
}

// VerifyTeacher checks the submitted access code and issues a capability
// token. A configured bcrypt hash takes precedence over the plain code.
func (s *AuthService) VerifyTeacher(code string) (string, error) {
	if code == "" {
		return "", appErrors.ErrInvalidAccessCode
	}

	switch {
	case s.accessCodeHash != "":
		if err := bcrypt.CompareHashAndPassword([]byte(s.accessCodeHash), []byte(code)); err != nil {
			return "", appErrors.ErrInvalidAccessCode
		}
	case s.accessCode != "":
		if subtle.ConstantTimeCompare([]byte(s.accessCode), []byte(code)) != 1 {
			return "", appErrors.ErrInvalidAccessCode
		}
	default:
		s.logger.Warn("teacher gate has no access code configured")
		return "", appErrors.ErrInvalidAccessCode
	}

	now := time.Now()
	claims := models.TeacherClaims{
		Teacher: true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "sign token")
	}
	return signed, nil
}

// ValidateToken parses and verifies a capability token.
func (s *AuthService) ValidateToken(raw string) (*models.TeacherClaims, error) {
	claims := &models.TeacherClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.ErrUnauthorized
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || !claims.Teacher {
		return nil, appErrors.ErrUnauthorized
	}
	return claims, nil
}
