// Package footprint records profile-view events and aggregates them for
// the "who visited me" views.
package footprint

import (
	"context"
	"time"

	"github.com/sawara-dev/ashiato/apperr"
	"github.com/sawara-dev/ashiato/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service records and aggregates footprints.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New creates a footprint Service.
func New(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// RecordVisit inserts one footprint row for a profile view. Self-views are
// never recorded. Callers invoke this after content has been fetched and
// permission-checked, so a denied view leaves no footprint.
func (s *Service) RecordVisit(ctx context.Context, profileOwnerID, viewerID int64) error {
	if profileOwnerID == viewerID {
		return nil
	}
	fp := &model.Footprint{ProfileOwnerID: profileOwnerID, ViewerID: viewerID}
	if err := s.db.WithContext(ctx).Create(fp).Error; err != nil {
		return apperr.Unavailable("footprint write failed", err)
	}
	return nil
}

// Visit is one aggregated footprint row: a viewer's latest visit on a day.
type Visit struct {
	ProfileOwnerID int64     `json:"user_id"`
	ViewerID       int64     `json:"owner_id"`
	Date           string    `json:"date"`
	LastVisit      time.Time `json:"updated"`
	AccountName    string    `json:"account_name,omitempty"`
	NickName       string    `json:"nick_name,omitempty"`
}

// Recent returns the owner's footprints grouped by (viewer, day), keeping
// the latest visit per group, ordered by that timestamp descending, capped
// at limit. Rows are consumed newest-first, so the first row seen for a
// (viewer, day) pair is that day's maximum and the collected order is
// already the final order.
func (s *Service) Recent(ctx context.Context, profileOwnerID int64, limit int) ([]Visit, error) {
	var rows []model.Footprint
	err := s.db.WithContext(ctx).
		Where("user_id = ?", profileOwnerID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Unavailable("footprint scan failed", err)
	}

	type dayKey struct {
		viewer int64
		date   string
	}
	seen := make(map[dayKey]struct{})
	visits := make([]Visit, 0, limit)
	for _, fp := range rows {
		k := dayKey{viewer: fp.ViewerID, date: fp.CreatedAt.Format("2006-01-02")}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		visits = append(visits, Visit{
			ProfileOwnerID: fp.ProfileOwnerID,
			ViewerID:       fp.ViewerID,
			Date:           k.date,
			LastVisit:      fp.CreatedAt,
		})
		if len(visits) >= limit {
			break
		}
	}

	if err := s.fillNames(ctx, visits); err != nil {
		return nil, err
	}
	return visits, nil
}

// fillNames resolves the viewers' account and nick names in one query.
func (s *Service) fillNames(ctx context.Context, visits []Visit) error {
	if len(visits) == 0 {
		return nil
	}
	ids := make([]int64, len(visits))
	for i, v := range visits {
		ids[i] = v.ViewerID
	}
	var users []model.User
	err := s.db.WithContext(ctx).
		Select("id, account_name, nick_name").
		Where("id IN ?", ids).
		Find(&users).Error
	if err != nil {
		return apperr.Unavailable("user lookup failed", err)
	}
	byID := make(map[int64]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for i := range visits {
		if u, ok := byID[visits[i].ViewerID]; ok {
			visits[i].AccountName = u.AccountName
			visits[i].NickName = u.NickName
		}
	}
	return nil
}
