package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/person-backend/internal/data/repos/person"
	"github.com/yungbote/person-backend/internal/domain"
	"github.com/yungbote/person-backend/internal/http/response"
)

// MemoryMapHandler exposes the in-memory person store for inspection. It is
// only routed when the memory backend is active.
type MemoryMapHandler struct {
	store *person.MemoryStore
}

func NewMemoryMapHandler(store *person.MemoryStore) *MemoryMapHandler {
	return &MemoryMapHandler{store: store}
}

// GET /api/v1/memory-map/stats
func (h *MemoryMapHandler) Stats(c *gin.Context) {
	response.RespondOK(c, h.store.Stats())
}

// GET /api/v1/memory-map/content
func (h *MemoryMapHandler) Content(c *gin.Context) {
	content := h.store.Content()
	out := make(map[string]*domain.Person, len(content))
	for id, p := range content {
		out[strconv.FormatInt(id, 10)] = p
	}
	c.JSON(http.StatusOK, out)
}
