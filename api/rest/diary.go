package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sawara-dev/ashiato/diary"
	"github.com/sawara-dev/ashiato/footprint"
	"github.com/sawara-dev/ashiato/user"
	"go.uber.org/zap"
)

// DiaryHandler handles entry listing, viewing, and posting.
type DiaryHandler struct {
	users      *user.Service
	diary      *diary.Service
	footprints *footprint.Service
	logger     *zap.Logger
}

// NewDiaryHandler creates a DiaryHandler.
func NewDiaryHandler(users *user.Service, d *diary.Service, fp *footprint.Service, logger *zap.Logger) *DiaryHandler {
	return &DiaryHandler{users: users, diary: d, footprints: fp, logger: logger}
}

// List handles GET /diary/entries/:account_name.
func (h *DiaryHandler) List(c *gin.Context) {
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

	entries, err := h.diary.ListForDiary(ctx, viewer.ID, owner.ID)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}

	if err := h.footprints.RecordVisit(ctx, owner.ID, viewer.ID); err != nil {
		abortError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"owner":   owner,
		"entries": entries,
		"myself":  viewer.ID == owner.ID,
	})
}

// Show handles GET /diary/entry/:entry_id.
func (h *DiaryHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()
	viewer, err := currentUser(c, h.users)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}

	entryID, err := strconv.ParseInt(c.Param("entry_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	entry, comments, err := h.diary.GetEntry(ctx, viewer.ID, entryID)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}

	owner, err := h.users.Get(ctx, entry.UserID)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}

	if err := h.footprints.RecordVisit(ctx, owner.ID, viewer.ID); err != nil {
		abortError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"owner":    owner,
		"entry":    entry,
		"comments": comments,
	})
}

type postEntryRequest struct {
	Title   string `json:"title"`
	Content string `json:"content" binding:"required"`
	Private bool   `json:"private"`
}

// Create handles POST /diary/entry.
func (h *DiaryHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	viewer, err := currentUser(c, h.users)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}

	var req postEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.diary.PostEntry(ctx, viewer.ID, req.Title, req.Content, req.Private)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": entry.ID})
}

type postCommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// Comment handles POST /diary/comment/:entry_id.
func (h *DiaryHandler) Comment(c *gin.Context) {
	ctx := c.Request.Context()
	viewer, err := currentUser(c, h.users)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}

	entryID, err := strconv.ParseInt(c.Param("entry_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	var req postCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.diary.PostComment(ctx, viewer.ID, entryID, req.Comment)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": comment.ID})
}
