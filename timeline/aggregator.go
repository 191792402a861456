// Package timeline builds the "friends' recent activity" feed by filtering
// a capped window of globally recent content through the friendship index.
// The feed is deliberately approximate: content older than the window is
// never surfaced, trading completeness for a bounded number of row scans.
package timeline

import (
	"context"
	"errors"
	"time"

	"github.com/sawara-dev/ashiato/apperr"
	"github.com/sawara-dev/ashiato/config"
	"github.com/sawara-dev/ashiato/friendship"
	"github.com/sawara-dev/ashiato/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Friend is one row of the friend list with the first-seen date of the
// friendship.
type Friend struct {
	UserID int64     `json:"user_id"`
	Since  time.Time `json:"created_at"`
}

// Aggregator produces the home-feed components.
type Aggregator struct {
	db       *gorm.DB
	friends  *friendship.Service
	window   int
	maxItems int
	logger   *zap.Logger
}

// New creates an Aggregator with the configured window size and result cap.
func New(db *gorm.DB, friends *friendship.Service, feed config.FeedConfig, logger *zap.Logger) *Aggregator {
	window := feed.WindowSize
	if window <= 0 {
		window = 1000
	}
	maxItems := feed.MaxItems
	if maxItems <= 0 {
		maxItems = 10
	}
	return &Aggregator{db: db, friends: friends, window: window, maxItems: maxItems, logger: logger}
}

// FriendEntries returns the newest friend-authored entries from the global
// recency window, newest first, at most maxItems.
func (a *Aggregator) FriendEntries(ctx context.Context, viewerID int64) ([]model.Entry, error) {
	var window []model.Entry
	err := a.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(a.window).
		Find(&window).Error
	if err != nil {
		return nil, apperr.Unavailable("entry window scan failed", err)
	}
	return boundedScan(window, a.maxItems, func(e *model.Entry) (bool, error) {
		return a.friends.IsFriend(ctx, viewerID, e.UserID)
	})
}

// FriendComments returns the newest friend-authored comments from the
// global recency window. Comments on a private entry are kept only when the
// viewer is permitted to see that entry's owner.
func (a *Aggregator) FriendComments(ctx context.Context, viewerID int64) ([]model.Comment, error) {
	var window []model.Comment
	err := a.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(a.window).
		Find(&window).Error
	if err != nil {
		return nil, apperr.Unavailable("comment window scan failed", err)
	}
	return boundedScan(window, a.maxItems, func(c *model.Comment) (bool, error) {
		ok, err := a.friends.IsFriend(ctx, viewerID, c.UserID)
		if err != nil || !ok {
			return false, err
		}
		var e model.Entry
		err = a.db.WithContext(ctx).First(&e, c.EntryID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Orphaned comment; nothing to show.
			return false, nil
		}
		if err != nil {
			return false, apperr.Unavailable("parent entry lookup failed", err)
		}
		if !e.Private {
			return true, nil
		}
		return a.friends.Permitted(ctx, viewerID, e.UserID)
	})
}

// FriendList returns every friend of viewerID with the date the friendship
// was first seen. Relations touching the viewer in either direction are
// consumed newest-first, and only the first assignment per other-party id
// is kept; an existing map entry is never overwritten.
func (a *Aggregator) FriendList(ctx context.Context, viewerID int64) ([]Friend, error) {
	var rels []model.Relation
	err := a.db.WithContext(ctx).
		Where("one = ? OR another = ?", viewerID, viewerID).
		Order("created_at DESC").
		Find(&rels).Error
	if err != nil {
		return nil, apperr.Unavailable("relation scan failed", err)
	}
	seen := make(map[int64]struct{}, len(rels))
	friends := make([]Friend, 0, len(rels))
	for _, rel := range rels {
		other := rel.Another
		if rel.One != viewerID {
			other = rel.One
		}
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		friends = append(friends, Friend{UserID: other, Since: rel.CreatedAt})
	}
	return friends, nil
}
