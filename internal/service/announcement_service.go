package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nbdwit/club-api/internal/models"
	appErrors "github.com/nbdwit/club-api/pkg/errors"
)

// announcementStore is the slice of the snapshot store the feed needs.
type announcementStore interface {
	Announcements() []models.Announcement
	UpsertAnnouncement(a models.Announcement)
	Refresh(ctx context.Context) error
}

// SaveAnnouncementRequest creates or updates an announcement. ImageURL
// carries either a hosted URL or an inline data URL.
type SaveAnnouncementRequest struct {
	ID       string `json:"id"`
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	ImageURL string `json:"imageUrl"`
	IsPinned bool   `json:"isPinned"`
	IsHidden bool   `json:"isHidden"`
}

// AnnouncementService manages the club notice feed.
type AnnouncementService struct {
	store         announcementStore
	sink          mutationSink
	maxImageBytes int64
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewAnnouncementService constructs the announcement service.
func NewAnnouncementService(store announcementStore, sink mutationSink, maxImageBytes int64, validate *validator.Validate, logger *zap.Logger) *AnnouncementService {
	if maxImageBytes <= 0 {
		maxImageBytes = 1536 * 1024
	}
	if validate == nil {
		validate = newValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementService{store: store, sink: sink, maxImageBytes: maxImageBytes, validate: validate, logger: logger}
}

func sortFeed(items []models.Announcement) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].IsPinned != items[j].IsPinned {
			return items[i].IsPinned
		}
		return items[i].CreatedTime.After(items[j].CreatedTime)
	})
}

// Feed returns the public notice feed: hidden entries excluded, pinned
// entries first, then newest first.
func (s *AnnouncementService) Feed() []models.Announcement {
	all := s.store.Announcements()
	out := make([]models.Announcement, 0, len(all))
	for _, a := range all {
		if !a.IsHidden {
			out = append(out, a)
		}
	}
	sortFeed(out)
	return out
}

// All returns every announcement including hidden ones, in feed order.
// Teacher view.
func (s *AnnouncementService) All() []models.Announcement {
	all := s.store.Announcements()
	sortFeed(all)
	return all
}

// Save creates or updates an announcement. New entries get a millisecond
// timestamp id, the id scheme the sheet already holds.
func (s *AnnouncementService) Save(ctx context.Context, req SaveAnnouncementRequest) (models.Announcement, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.Announcement{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid announcement")
	}
	if int64(len(req.ImageURL)) > s.maxImageBytes {
		return models.Announcement{}, appErrors.Clone(appErrors.ErrPayloadTooLarge, "announcement image too large")
	}

	now := time.Now()
	announcement := models.Announcement{
		ID:          req.ID,
		Title:       req.Title,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		IsPinned:    req.IsPinned,
		IsHidden:    req.IsHidden,
		CreatedAt:   now.UTC().Format(time.RFC3339),
		CreatedTime: now,
	}
	if announcement.ID == "" {
		announcement.ID = strconv.FormatInt(now.UnixMilli(), 10)
	} else if existing, ok := s.find(req.ID); ok {
		announcement.CreatedAt = existing.CreatedAt
		announcement.CreatedTime = existing.CreatedTime
	}

	if err := s.sink.Submit(ctx, models.AnnouncementMutation(announcement)); err != nil {
		return models.Announcement{}, err
	}

	s.store.UpsertAnnouncement(announcement)
	if err := s.store.Refresh(ctx); err != nil {
		s.logger.Warn("post-save refresh failed", zap.Error(err))
	}
	return announcement, nil
}

func (s *AnnouncementService) find(id string) (models.Announcement, bool) {
	for _, a := range s.store.Announcements() {
		if a.ID == id {
			return a, true
		}
	}
	return models.Announcement{}, false
}
