package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbdwit/club-api/internal/models"
	appErrors "github.com/nbdwit/club-api/pkg/errors"
)

func announcementFixture() *stubStore {
	at := func(s string) time.Time {
		ts, _ := time.Parse(time.RFC3339, s)
		return ts
	}
	return &stubStore{announcements: []models.Announcement{
		{ID: "1", Title: "เก่า", CreatedTime: at("2025-06-01T10:00:00Z")},
		{ID: "2", Title: "ปักหมุด", IsPinned: true, CreatedTime: at("2025-05-01T10:00:00Z")},
		{ID: "3", Title: "ซ่อน", IsHidden: true, CreatedTime: at("2025-06-20T10:00:00Z")},
		{ID: "4", Title: "ใหม่", CreatedTime: at("2025-06-15T10:00:00Z")},
	}}
}

func TestFeedHidesAndOrders(t *testing.T) {
	svc := NewAnnouncementService(announcementFixture(), &stubSink{}, 0, nil, nil)

	feed := svc.Feed()
	require.Len(t, feed, 3)
	assert.Equal(t, "2", feed[0].ID, "pinned first")
	assert.Equal(t, "4", feed[1].ID, "then newest")
	assert.Equal(t, "1", feed[2].ID)
}

func TestAllIncludesHidden(t *testing.T) {
	svc := NewAnnouncementService(announcementFixture(), &stubSink{}, 0, nil, nil)
	assert.Len(t, svc.All(), 4)
}

func TestSaveAssignsMillisecondID(t *testing.T) {
	store := &stubStore{}
	sink := &stubSink{}
	svc := NewAnnouncementService(store, sink, 0, nil, nil)

	saved, err := svc.Save(context.Background(), SaveAnnouncementRequest{
		Title: "นัดประชุม", Content: "พบกันห้องชมรม", IsPinned: true,
	})
	require.NoError(t, err)
	assert.Len(t, saved.ID, 13, "millisecond epoch id")

	require.Len(t, sink.mutations, 1)
	m := sink.mutations[0]
	assert.Equal(t, models.ModeAnnouncement, m.Mode)
	assert.Equal(t, "true", m.Fields["isPinned"])
	assert.Equal(t, "false", m.Fields["isHidden"])
}

func TestSaveKeepsCreatedAtOnUpdate(t *testing.T) {
	store := announcementFixture()
	svc := NewAnnouncementService(store, &stubSink{}, 0, nil, nil)

	updated, err := svc.Save(context.Background(), SaveAnnouncementRequest{
		ID: "1", Title: "เก่า (แก้ไข)", Content: "เนื้อหา", IsHidden: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "1", updated.ID)
	assert.Equal(t, store.announcements[0].CreatedTime, updated.CreatedTime)
	assert.True(t, store.announcements[0].IsHidden, "upsert applied locally")
}

func TestSaveValidation(t *testing.T) {
	svc := NewAnnouncementService(&stubStore{}, &stubSink{}, 0, nil, nil)

	_, err := svc.Save(context.Background(), SaveAnnouncementRequest{Content: "x"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Save(context.Background(), SaveAnnouncementRequest{Title: "x"})
	require.Error(t, err)
}

func TestSaveImageCap(t *testing.T) {
	svc := NewAnnouncementService(&stubStore{}, &stubSink{}, 64, nil, nil)

	_, err := svc.Save(context.Background(), SaveAnnouncementRequest{
		Title: "x", Content: "y", ImageURL: "data:image/png;base64," + strings.Repeat("A", 100),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPayloadTooLarge.Code, appErrors.FromError(err).Code)
}
