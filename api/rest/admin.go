package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sawara-dev/ashiato/friendship"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Benchmark datasets keep a fixed seed below these ids; everything above is
// traffic generated since the last reset.
const (
	maxSeedRelationID  = 500000
	maxSeedFootprintID = 500000
	maxSeedEntryID     = 500000
	maxSeedCommentID   = 1500000
)

// AdminHandler handles the administrative dataset reset.
type AdminHandler struct {
	db      *gorm.DB
	friends *friendship.Service
	logger  *zap.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(db *gorm.DB, friends *friendship.Service, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{db: db, friends: friends, logger: logger}
}

// Initialize handles GET /initialize: trim rows above the seed watermarks,
// then rebuild the friend index. No ordinary traffic may run during this
// window; the rebuild's bulk writes would race live cache appends.
func (h *AdminHandler) Initialize(c *gin.Context) {
	ctx := c.Request.Context()

	steps := []struct {
		query string
		arg   int
	}{
		{"DELETE FROM relations WHERE id > ?", maxSeedRelationID},
		{"DELETE FROM footprints WHERE id > ?", maxSeedFootprintID},
		{"DELETE FROM entries WHERE id > ?", maxSeedEntryID},
		{"DELETE FROM comments WHERE id > ?", maxSeedCommentID},
	}
	for _, st := range steps {
		if err := h.db.WithContext(ctx).Exec(st.query, st.arg).Error; err != nil {
			h.logger.Error("dataset trim failed", zap.String("query", st.query), zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
			return
		}
	}

	if err := h.friends.Rebuild(ctx); err != nil {
		abortError(c, h.logger, err)
		return
	}
	c.Status(http.StatusOK)
}
