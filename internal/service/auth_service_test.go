package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nbdwit/club-api/pkg/config"
)

func gateConfig() config.TeacherGateConfig {
	return config.TeacherGateConfig{
		AccessCode:    "2521",
		JWTSecret:     "test_secret",
		JWTExpiration: time.Hour,
	}
}

func TestVerifyTeacherIssuesToken(t *testing.T) {
	svc := NewAuthService(gateConfig(), nil)

	token, err := svc.VerifyTeacher("2521")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.Teacher)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestVerifyTeacherRejectsWrongCode(t *testing.T) {
	svc := NewAuthService(gateConfig(), nil)

	for _, code := range []string{"", "0000", "25210", "252"} {
		_, err := svc.VerifyTeacher(code)
		assert.Error(t, err, code)
	}
}

func TestVerifyTeacherPrefersHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("9876"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := gateConfig()
	cfg.AccessCodeHash = string(hash)
	svc := NewAuthService(cfg, nil)

	_, err = svc.VerifyTeacher("2521")
	assert.Error(t, err, "plain code ignored when a hash is configured")

	token, err := svc.VerifyTeacher("9876")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestVerifyTeacherUnconfiguredGate(t *testing.T) {
	svc := NewAuthService(config.TeacherGateConfig{JWTSecret: "x", JWTExpiration: time.Hour}, nil)
	_, err := svc.VerifyTeacher("anything")
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(gateConfig(), nil)

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)

	other := NewAuthService(config.TeacherGateConfig{AccessCode: "2521", JWTSecret: "different", JWTExpiration: time.Hour}, nil)
	token, err := other.VerifyTeacher("2521")
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.Error(t, err, "token signed with another secret")
}

func TestValidateTokenExpired(t *testing.T) {
	cfg := gateConfig()
	cfg.JWTExpiration = -time.Minute
	svc := NewAuthService(cfg, nil)

	token, err := svc.VerifyTeacher("2521")
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
