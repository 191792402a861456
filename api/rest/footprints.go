package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sawara-dev/ashiato/footprint"
	"github.com/sawara-dev/ashiato/user"
	"go.uber.org/zap"
)

const footprintPageLimit = 50

// FootprintsHandler handles the "who visited me" page.
type FootprintsHandler struct {
	users      *user.Service
	footprints *footprint.Service
	logger     *zap.Logger
}

// NewFootprintsHandler creates a FootprintsHandler.
func NewFootprintsHandler(users *user.Service, fp *footprint.Service, logger *zap.Logger) *FootprintsHandler {
	return &FootprintsHandler{users: users, footprints: fp, logger: logger}
}

// List handles GET /footprints.
func (h *FootprintsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	viewer, err := currentUser(c, h.users)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}

	visits, err := h.footprints.Recent(ctx, viewer.ID, footprintPageLimit)
	if err != nil {
		abortError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"footprints": visits})
}
