// Package friendship maintains the denormalized friend-graph index in the
// key-value cache and answers the membership and permission queries built
// on it. The relation store stays authoritative; the cache is a rebuildable
// projection keyed by user id.
package friendship

import (
	"context"
	"errors"
	"strconv"

	"github.com/sawara-dev/ashiato/apperr"
	"github.com/sawara-dev/ashiato/cache"
	"github.com/sawara-dev/ashiato/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const keyPrefix = "friends:"

func cacheKey(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10)
}

// Service answers friendship-membership queries from the cache and keeps
// the cache in sync with relation writes.
type Service struct {
	db     *gorm.DB
	cache  cache.Cache
	logger *zap.Logger
}

// New creates a friendship Service.
func New(db *gorm.DB, c cache.Cache, logger *zap.Logger) *Service {
	return &Service{db: db, cache: c, logger: logger}
}

// IsFriend reports whether candidateID is in viewerID's cached friend set.
// A cache miss reads as an empty friend set, not as unknown: the index is
// bulk-loaded at dataset initialization and appended to on every new
// friendship, so a never-cached user has no friends by construction.
func (s *Service) IsFriend(ctx context.Context, viewerID, candidateID int64) (bool, error) {
	raw, err := s.cache.Get(ctx, cacheKey(viewerID))
	if errors.Is(err, cache.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Unavailable("friend cache read failed", err)
	}
	for _, id := range decodeIDs(raw) {
		if id == candidateID {
			return true, nil
		}
	}
	return false, nil
}

// Permitted reports whether viewerID may see ownerID's private content:
// owners always see their own, everyone else needs a friendship.
func (s *Service) Permitted(ctx context.Context, viewerID, ownerID int64) (bool, error) {
	if viewerID == ownerID {
		return true, nil
	}
	return s.IsFriend(ctx, viewerID, ownerID)
}

// AddFriendship records a friendship between aID and bID: both directed
// relation rows in one transaction, then a cache append for each side.
func (s *Service) AddFriendship(ctx context.Context, aID, bID int64) error {
	if aID == bID {
		return errors.New("friendship: self friendship is not allowed")
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.Relation{One: aID, Another: bID}).Error; err != nil {
			return err
		}
		return tx.Create(&model.Relation{One: bID, Another: aID}).Error
	})
	if err != nil {
		return apperr.Unavailable("relation store write failed", err)
	}
	if err := s.appendCached(ctx, aID, bID); err != nil {
		return err
	}
	return s.appendCached(ctx, bID, aID)
}

// appendCached reads the encoded list for userID, appends friendID, and
// writes it back. Known hazard: this read-modify-write has no
// compare-and-swap, so two concurrent appends to the same key can lose one
// update. The relation store keeps the truth and Rebuild restores the full
// set.
func (s *Service) appendCached(ctx context.Context, userID, friendID int64) error {
	raw, err := s.cache.Get(ctx, cacheKey(userID))
	if err != nil && !errors.Is(err, cache.ErrNotFound) {
		return apperr.Unavailable("friend cache read failed", err)
	}
	if err := s.cache.Set(ctx, cacheKey(userID), appendID(raw, friendID), 0); err != nil {
		return apperr.Unavailable("friend cache write failed", err)
	}
	return nil
}

// Rebuild rewrites the whole adjacency index from the relation store: one
// full-table scan grouped by the edge origin, one cache write per user.
// Writes are last-writer-wins, so this must never run concurrently with
// AddFriendship; callers invoke it only inside the administrative reset
// window.
func (s *Service) Rebuild(ctx context.Context) error {
	var rels []model.Relation
	if err := s.db.WithContext(ctx).Order("one, created_at").Find(&rels).Error; err != nil {
		return apperr.Unavailable("relation store scan failed", err)
	}
	byUser := make(map[int64][]int64)
	for _, rel := range rels {
		byUser[rel.One] = append(byUser[rel.One], rel.Another)
	}
	for userID, friendIDs := range byUser {
		if err := s.cache.Set(ctx, cacheKey(userID), encodeIDs(friendIDs), 0); err != nil {
			return apperr.Unavailable("friend cache write failed", err)
		}
	}
	s.logger.Info("friend index rebuilt",
		zap.Int("users", len(byUser)),
		zap.Int("edges", len(rels)),
	)
	return nil
}
