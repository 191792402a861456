package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sawara-dev/ashiato/apperr"
	"github.com/sawara-dev/ashiato/diary"
	"github.com/sawara-dev/ashiato/footprint"
	"github.com/sawara-dev/ashiato/friendship"
	"github.com/sawara-dev/ashiato/user"
	"go.uber.org/zap"
)

// ProfileHandler handles profile views and edits.
type ProfileHandler struct {
	users      *user.Service
	diary      *diary.Service
	friends    *friendship.Service
	footprints *footprint.Service
	logger     *zap.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(users *user.Service, d *diary.Service, friends *friendship.Service, fp *footprint.Service, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{users: users, diary: d, friends: friends, footprints: fp, logger: logger}
}

// Show handles GET /profile/:account_name. The footprint is recorded only
// after the content has been fetched with the permission-dependent variant,
// so a failed view never leaves one.
func (h *ProfileHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()
	viewer, err := currentUser(c, h.users)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}

	owner, err := h.users.ByAccountName(ctx, c.Param("account_name"))
	if err != nil {
		abortError(c, h.logger, err)
		return
	}

	profile, err := h.users.Profile(ctx, owner.ID)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}

	entries, err := h.diary.ListForProfile(ctx, viewer.ID, owner.ID)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}

	permitted, err := h.friends.Permitted(ctx, viewer.ID, owner.ID)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}

	if err := h.footprints.RecordVisit(ctx, owner.ID, viewer.ID); err != nil {
		abortError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"owner":     owner,
		"profile":   profile,
		"entries":   entries,
		"permitted": permitted,
	})
}

type profileUpdateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Sex       string `json:"sex"`
	Birthday  string `json:"birthday"`
	Pref      string `json:"pref"`
}

// Update handles POST /profile/:account_name. Only the owner may update.
func (h *ProfileHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	viewer, err := currentUser(c, h.users)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}

	if c.Param("account_name") != viewer.AccountName {
		abortError(c, h.logger, apperr.Denied("not profile owner"))
		return
	}

	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.users.UpsertProfile(ctx, viewer.ID, user.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Sex:       req.Sex,
		Birthday:  req.Birthday,
		Pref:      req.Pref,
	})
	if err != nil {
		abortError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}
