package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/person-backend/internal/domain"
	"github.com/yungbote/person-backend/internal/http/response"
	"github.com/yungbote/person-backend/internal/platform/logger"
	"github.com/yungbote/person-backend/internal/services"
)

type PersonHandler struct {
	log *logger.Logger
	svc services.PersonService
}

func NewPersonHandler(log *logger.Logger, svc services.PersonService) *PersonHandler {
	return &PersonHandler{log: log.With("handler", "PersonHandler"), svc: svc}
}

type personRequest struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	DocumentID string `json:"document_id"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

func (r personRequest) toDomain() *domain.Person {
	return &domain.Person{ID: r.ID, Name: r.Name, DocumentID: r.DocumentID, Phone: r.Phone, Email: r.Email}
}

// POST /api/v1/persons
func (h *PersonHandler) Create(c *gin.Context) {
	var req personRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.svc.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		fail(c, h.log, "create person", err)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/v1/persons/%d", p.ID))
	response.RespondCreated(c, p)
}

// GET /api/v1/persons
func (h *PersonHandler) List(c *gin.Context) {
	rows, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		fail(c, h.log, "list persons", err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/v1/persons/search?name=
func (h *PersonHandler) Search(c *gin.Context) {
	name, ok := c.GetQuery("name")
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", domain.InvalidArgument("search", "query parameter name is required"))
		return
	}
	rows, err := h.svc.SearchByName(c.Request.Context(), name)
	if err != nil {
		fail(c, h.log, "search persons", err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/v1/persons/count
func (h *PersonHandler) Count(c *gin.Context) {
	n, err := h.svc.Count(c.Request.Context())
	if err != nil {
		fail(c, h.log, "count persons", err)
		return
	}
	response.RespondOK(c, n)
}

// GET /api/v1/persons/document/:document_id
func (h *PersonHandler) GetByDocument(c *gin.Context) {
	p, err := h.svc.FindByDocumentID(c.Request.Context(), c.Param("document_id"))
	if err != nil {
		fail(c, h.log, "find person by document", err)
		return
	}
	if p == nil {
		response.RespondError(c, http.StatusNotFound, "not_found", domain.NotFound("person.find", "no person with that document id"))
		return
	}
	response.RespondOK(c, p)
}

// GET /api/v1/persons/:id
func (h *PersonHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		fail(c, h.log, "find person", err)
		return
	}
	if p == nil {
		response.RespondError(c, http.StatusNotFound, "not_found", domain.NotFound("person.find", fmt.Sprintf("person %d not found", id)))
		return
	}
	response.RespondOK(c, p)
}

// PUT /api/v1/persons/:id
func (h *PersonHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req personRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.svc.Update(c.Request.Context(), id, req.toDomain())
	if err != nil {
		fail(c, h.log, "update person", err)
		return
	}
	response.RespondOK(c, p)
}

// PATCH /api/v1/persons/:id with {"field": "value", ...}
func (h *PersonHandler) Patch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	values, keys, ok := patchFields(c)
	if !ok {
		return
	}
	var p *domain.Person
	for _, k := range keys {
		var err error
		p, err = h.svc.UpdateField(c.Request.Context(), id, k, values[k])
		if err != nil {
			fail(c, h.log, "patch person", err)
			return
		}
	}
	response.RespondOK(c, p)
}

// DELETE /api/v1/persons/:id
func (h *PersonHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.log, "delete person", err)
		return
	}
	response.RespondNoContent(c)
}
