package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbdwit/club-api/internal/models"
	appErrors "github.com/nbdwit/club-api/pkg/errors"
)

func TestRegisterForwardsAndApplies(t *testing.T) {
	store := &stubStore{}
	sink := &stubSink{}
	svc := NewRosterService(store, sink, nil, nil)

	student, err := svc.Register(context.Background(), RegisterStudentRequest{
		ID: "30412", Name: "สมชาย ใจดี", Level: "ม.4", Room: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, "30412", student.ID)

	require.Len(t, sink.mutations, 1)
	assert.Equal(t, models.ModeRegistration, sink.mutations[0].Mode)
	assert.Equal(t, "7", sink.mutations[0].Fields["room"])

	_, ok := store.FindStudent("30412")
	assert.True(t, ok)
	assert.Equal(t, 1, store.refreshCalls)
}

func TestRegisterRejectsDuplicateID(t *testing.T) {
	store := &stubStore{students: []models.Student{{ID: "30412", Name: "เดิม", Level: "ม.4", Room: 7}}}
	sink := &stubSink{}
	svc := NewRosterService(store, sink, nil, nil)

	_, err := svc.Register(context.Background(), RegisterStudentRequest{
		ID: "30412", Name: "ซ้ำ", Level: "ม.4", Room: 7,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDuplicate.Code, appErrors.FromError(err).Code)
	assert.Empty(t, sink.mutations, "nothing forwarded on duplicate")
}

func TestRegisterValidation(t *testing.T) {
	svc := NewRosterService(&stubStore{}, &stubSink{}, nil, nil)

	cases := []struct {
		name string
		req  RegisterStudentRequest
	}{
		{"short id", RegisterStudentRequest{ID: "3041", Name: "ก", Level: "ม.4", Room: 7}},
		{"non-numeric id", RegisterStudentRequest{ID: "3041x", Name: "ก", Level: "ม.4", Room: 7}},
		{"missing name", RegisterStudentRequest{ID: "30412", Level: "ม.4", Room: 7}},
		{"bad level", RegisterStudentRequest{ID: "30412", Name: "ก", Level: "ม.3", Room: 7}},
		{"room too high", RegisterStudentRequest{ID: "30412", Name: "ก", Level: "ม.4", Room: 14}},
		{"room missing", RegisterStudentRequest{ID: "30412", Name: "ก", Level: "ม.4"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.req)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}
}

func TestRegisterSinkFailureDoesNotApply(t *testing.T) {
	store := &stubStore{}
	sink := &stubSink{err: errSinkDown}
	svc := NewRosterService(store, sink, nil, nil)

	_, err := svc.Register(context.Background(), RegisterStudentRequest{
		ID: "30412", Name: "ก", Level: "ม.4", Room: 7,
	})
	require.Error(t, err)
	_, ok := store.FindStudent("30412")
	assert.False(t, ok)
}

func TestUpdateSkipsDuplicateCheck(t *testing.T) {
	store := &stubStore{students: []models.Student{{ID: "30412", Name: "เดิม", Level: "ม.4", Room: 7}}}
	sink := &stubSink{}
	svc := NewRosterService(store, sink, nil, nil)

	updated, err := svc.Update(context.Background(), "30412", RegisterStudentRequest{
		Name: "ใหม่", Level: "ม.5", Room: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "ใหม่", updated.Name)

	stored, _ := store.FindStudent("30412")
	assert.Equal(t, "ม.5", stored.Level)
}

func TestUpdateUnknownStudent(t *testing.T) {
	svc := NewRosterService(&stubStore{}, &stubSink{}, nil, nil)
	_, err := svc.Update(context.Background(), "30412", RegisterStudentRequest{Name: "ก", Level: "ม.4", Room: 1})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDeleteForwardsAndRemoves(t *testing.T) {
	store := &stubStore{students: []models.Student{{ID: "30412", Name: "ก", Level: "ม.4", Room: 7}}}
	sink := &stubSink{}
	svc := NewRosterService(store, sink, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "30412"))
	require.Len(t, sink.mutations, 1)
	assert.Equal(t, models.ModeDeleteStudent, sink.mutations[0].Mode)
	assert.Equal(t, "30412", sink.mutations[0].Fields["id"])

	_, ok := store.FindStudent("30412")
	assert.False(t, ok)
}

func TestRegisterSurvivesRefreshFailure(t *testing.T) {
	store := &stubStore{refreshErr: errSinkDown}
	svc := NewRosterService(store, &stubSink{}, nil, nil)

	_, err := svc.Register(context.Background(), RegisterStudentRequest{
		ID: "30412", Name: "ก", Level: "ม.4", Room: 7,
	})
	assert.NoError(t, err, "refresh failure after a forwarded write is not an error")
}
