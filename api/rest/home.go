package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sawara-dev/ashiato/diary"
	"github.com/sawara-dev/ashiato/footprint"
	"github.com/sawara-dev/ashiato/timeline"
	"github.com/sawara-dev/ashiato/user"
	"go.uber.org/zap"
)

const (
	homeCommentLimit   = 10
	homeFootprintLimit = 10
)

// HomeHandler assembles the aggregated home view.
type HomeHandler struct {
	users      *user.Service
	diary      *diary.Service
	agg        *timeline.Aggregator
	footprints *footprint.Service
	logger     *zap.Logger
}

// NewHomeHandler creates a HomeHandler.
func NewHomeHandler(users *user.Service, d *diary.Service, agg *timeline.Aggregator, fp *footprint.Service, logger *zap.Logger) *HomeHandler {
	return &HomeHandler{users: users, diary: d, agg: agg, footprints: fp, logger: logger}
}

// View handles GET /. It assembles the viewer's profile, their own recent
// entries, comments left for them, both friend feeds, the friend list, and
// recent footprints into one response model.
func (h *HomeHandler) View(c *gin.Context) {
	ctx := c.Request.Context()
	viewer, err := currentUser(c, h.users)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}

	profile, err := h.users.Profile(ctx, viewer.ID)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}

	ownEntries, err := h.diary.ListForProfile(ctx, viewer.ID, viewer.ID)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}

	commentsForMe, err := h.diary.CommentsForUser(ctx, viewer.ID, homeCommentLimit)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}

	friendEntries, err := h.agg.FriendEntries(ctx, viewer.ID)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}
	entriesOfFriends := make([]diary.Entry, len(friendEntries))
	for i := range friendEntries {
		entriesOfFriends[i] = diary.ToView(&friendEntries[i])
	}

	commentsOfFriends, err := h.agg.FriendComments(ctx, viewer.ID)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}

	friends, err := h.agg.FriendList(ctx, viewer.ID)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}

	footprints, err := h.footprints.Recent(ctx, viewer.ID, homeFootprintLimit)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":                viewer,
		"profile":             profile,
		"entries":             ownEntries,
		"comments_for_me":     commentsForMe,
		"entries_of_friends":  entriesOfFriends,
		"comments_of_friends": commentsOfFriends,
		"friends":             friends,
		"footprints":          footprints,
	})
}
