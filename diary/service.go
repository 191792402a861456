// Package diary serves entry and comment content with friendship-gated
// visibility of private entries.
package diary

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sawara-dev/ashiato/apperr"
	"github.com/sawara-dev/ashiato/friendship"
	"github.com/sawara-dev/ashiato/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultTitle replaces an empty post title.
const defaultTitle = "タイトルなし"

const (
	profileEntryLimit = 5
	diaryEntryLimit   = 20
)

// Entry is a diary entry with the body split into title and content.
type Entry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Private   bool      `json:"private"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentView is a comment joined with its author's names.
type CommentView struct {
	ID          int64     `json:"id"`
	EntryID     int64     `json:"entry_id"`
	UserID      int64     `json:"user_id"`
	Comment     string    `gorm:"column:comment" json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
	AccountName string    `json:"account_name"`
	NickName    string    `json:"nick_name"`
}

// Service reads and writes diary content.
type Service struct {
	db      *gorm.DB
	friends *friendship.Service
	logger  *zap.Logger
}

// New creates a diary Service.
func New(db *gorm.DB, friends *friendship.Service, logger *zap.Logger) *Service {
	return &Service{db: db, friends: friends, logger: logger}
}

// splitBody splits a stored body into title (first line) and content (rest).
func splitBody(body string) (title, content string) {
	parts := strings.SplitN(body, "\n", 2)
	title = parts[0]
	if len(parts) > 1 {
		content = parts[1]
	}
	return title, content
}

// ToView splits a stored entry into its presentation shape.
func ToView(e *model.Entry) Entry {
	title, content := splitBody(e.Body)
	return Entry{
		ID:        e.ID,
		UserID:    e.UserID,
		Private:   e.Private,
		Title:     title,
		Content:   content,
		CreatedAt: e.CreatedAt,
	}
}

// list fetches the owner's entries with the permission-dependent query
// variant: permitted viewers get everything, others only public rows.
func (s *Service) list(ctx context.Context, viewerID, ownerID int64, order string, limit int) ([]Entry, error) {
	permitted, err := s.friends.Permitted(ctx, viewerID, ownerID)
	if err != nil {
		return nil, err
	}
	q := s.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if !permitted {
		q = q.Where("private = ?", false)
	}
	var rows []model.Entry
	if err := q.Order(order).Limit(limit).Find(&rows).Error; err != nil {
		return nil, apperr.Unavailable("entry listing failed", err)
	}
	out := make([]Entry, len(rows))
	for i := range rows {
		out[i] = ToView(&rows[i])
	}
	return out, nil
}

// ListForProfile returns the short entry list shown on a profile page.
// Ascending created_at order is intentional.
func (s *Service) ListForProfile(ctx context.Context, viewerID, ownerID int64) ([]Entry, error) {
	return s.list(ctx, viewerID, ownerID, "created_at", profileEntryLimit)
}

// ListForDiary returns the owner's diary page, newest first.
func (s *Service) ListForDiary(ctx context.Context, viewerID, ownerID int64) ([]Entry, error) {
	return s.list(ctx, viewerID, ownerID, "created_at DESC", diaryEntryLimit)
}

// GetEntry returns one entry with its comments. A missing entry is
// ContentNotFound; an existing private entry the viewer may not see is
// PermissionDenied. The two are distinct on purpose.
func (s *Service) GetEntry(ctx context.Context, viewerID, entryID int64) (*Entry, []CommentView, error) {
	var e model.Entry
	err := s.db.WithContext(ctx).First(&e, entryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, apperr.NotFound("entry not found")
	}
	if err != nil {
		return nil, nil, apperr.Unavailable("entry lookup failed", err)
	}
	if e.Private {
		permitted, err := s.friends.Permitted(ctx, viewerID, e.UserID)
		if err != nil {
			return nil, nil, err
		}
		if !permitted {
			return nil, nil, apperr.Denied("private entry")
		}
	}
	comments, err := s.EntryComments(ctx, e.ID)
	if err != nil {
		return nil, nil, err
	}
	view := ToView(&e)
	return &view, comments, nil
}

// PostEntry stores a new diary entry. The title becomes the first body
// line; an empty title gets the placeholder.
func (s *Service) PostEntry(ctx context.Context, ownerID int64, title, content string, private bool) (*model.Entry, error) {
	if title == "" {
		title = defaultTitle
	}
	e := &model.Entry{
		UserID:  ownerID,
		Private: private,
		Body:    title + "\n" + content,
	}
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, apperr.Unavailable("entry write failed", err)
	}
	return e, nil
}

// PostComment stores a comment on an entry, applying the same private-entry
// gating as GetEntry.
func (s *Service) PostComment(ctx context.Context, viewerID, entryID int64, text string) (*model.Comment, error) {
	var e model.Entry
	err := s.db.WithContext(ctx).First(&e, entryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("entry not found")
	}
	if err != nil {
		return nil, apperr.Unavailable("entry lookup failed", err)
	}
	if e.Private {
		permitted, err := s.friends.Permitted(ctx, viewerID, e.UserID)
		if err != nil {
			return nil, err
		}
		if !permitted {
			return nil, apperr.Denied("private entry")
		}
	}
	c := &model.Comment{EntryID: e.ID, UserID: viewerID, Comment: text}
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, apperr.Unavailable("comment write failed", err)
	}
	return c, nil
}

// EntryComments returns an entry's comments with author names, oldest first.
func (s *Service) EntryComments(ctx context.Context, entryID int64) ([]CommentView, error) {
	var out []CommentView
	err := s.db.WithContext(ctx).
		Table("comments").
		Select("comments.id, comments.entry_id, comments.user_id, comments.comment, comments.created_at, users.account_name, users.nick_name").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.entry_id = ?", entryID).
		Order("comments.created_at").
		Scan(&out).Error
	if err != nil {
		return nil, apperr.Unavailable("comment listing failed", err)
	}
	return out, nil
}

// CommentsForUser returns the newest comments left on the owner's entries,
// for the home page's "comments for me" block.
func (s *Service) CommentsForUser(ctx context.Context, ownerID int64, limit int) ([]CommentView, error) {
	var out []CommentView
	err := s.db.WithContext(ctx).
		Table("comments").
		Select("comments.id, comments.entry_id, comments.user_id, comments.comment, comments.created_at, users.account_name, users.nick_name").
		Joins("JOIN users ON users.id = comments.user_id").
		Joins("JOIN entries ON entries.id = comments.entry_id").
		Where("entries.user_id = ?", ownerID).
		Order("comments.created_at DESC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, apperr.Unavailable("comment listing failed", err)
	}
	return out, nil
}
