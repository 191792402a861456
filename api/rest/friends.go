package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sawara-dev/ashiato/friendship"
	"github.com/sawara-dev/ashiato/model"
	"github.com/sawara-dev/ashiato/timeline"
	"github.com/sawara-dev/ashiato/user"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FriendsHandler handles the friend list and friendship formation.
type FriendsHandler struct {
	db      *gorm.DB
	users   *user.Service
	friends *friendship.Service
	agg     *timeline.Aggregator
	logger  *zap.Logger
}

// NewFriendsHandler creates a FriendsHandler.
func NewFriendsHandler(db *gorm.DB, users *user.Service, friends *friendship.Service, agg *timeline.Aggregator, logger *zap.Logger) *FriendsHandler {
	return &FriendsHandler{db: db, users: users, friends: friends, agg: agg, logger: logger}
}

// FriendInfo is one friend-list row enriched with names.
type FriendInfo struct {
	timeline.Friend
	AccountName string `json:"account_name"`
	NickName    string `json:"nick_name"`
}

// List handles GET /friends.
func (h *FriendsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	viewer, err := currentUser(c, h.users)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}

	friends, err := h.agg.FriendList(ctx, viewer.ID)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}

	result := make([]FriendInfo, len(friends))
	if len(friends) > 0 {
		ids := make([]int64, len(friends))
		for i, f := range friends {
			ids[i] = f.UserID
		}
		var users []model.User
		if err := h.db.WithContext(ctx).
			Select("id, account_name, nick_name").
			Where("id IN ?", ids).
			Find(&users).Error; err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
			return
		}
		byID := make(map[int64]model.User, len(users))
		for _, u := range users {
			byID[u.ID] = u
		}
		for i, f := range friends {
			result[i] = FriendInfo{Friend: f}
			if u, ok := byID[f.UserID]; ok {
				result[i].AccountName = u.AccountName
				result[i].NickName = u.NickName
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"friends": result})
}

// Add handles POST /friends/:account_name. Adding an existing friend is a
// no-op.
func (h *FriendsHandler) Add(c *gin.Context) {
	ctx := c.Request.Context()
	viewer, err := currentUser(c, h.users)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}

	other, err := h.users.ByAccountName(ctx, c.Param("account_name"))
	if err != nil {
		abortError(c, h.logger, err)
		return
	}
	if other.ID == viewer.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot friend yourself"})
		return
	}

	already, err := h.friends.IsFriend(ctx, viewer.ID, other.ID)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}
	if already {
		c.JSON(http.StatusOK, gin.H{"message": "already friends"})
		return
	}

	if err := h.friends.AddFriendship(ctx, viewer.ID, other.ID); err != nil {
		abortError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "friend added"})
}
