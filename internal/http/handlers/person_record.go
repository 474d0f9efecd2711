package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/person-backend/internal/domain"
	"github.com/yungbote/person-backend/internal/http/response"
	"github.com/yungbote/person-backend/internal/platform/logger"
	"github.com/yungbote/person-backend/internal/services"
)

type PersonRecordHandler struct {
	log *logger.Logger
	svc services.PersonRecordService
}

func NewPersonRecordHandler(log *logger.Logger, svc services.PersonRecordService) *PersonRecordHandler {
	return &PersonRecordHandler{log: log.With("handler", "PersonRecordHandler"), svc: svc}
}

type personRecordRequest struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	BirthDate     string `json:"birth_date"`
	AdmissionDate string `json:"admission_date"`
}

type personRecordResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	BirthDate     string `json:"birth_date"`
	AdmissionDate string `json:"admission_date"`
}

func toRecordResponse(r *domain.PersonRecord) personRecordResponse {
	return personRecordResponse{
		ID:            r.ID,
		Name:          r.Name,
		BirthDate:     domain.FormatDate(r.BirthDate),
		AdmissionDate: domain.FormatDate(r.AdmissionDate),
	}
}

func (r personRecordRequest) toDomain() (*domain.PersonRecord, error) {
	out := &domain.PersonRecord{ID: r.ID, Name: r.Name}
	if s := strings.TrimSpace(r.BirthDate); s != "" {
		d, err := domain.ParseDate(s)
		if err != nil {
			return nil, domain.Validation("person_record.decode", "birth_date must be YYYY-MM-DD")
		}
		out.BirthDate = d
	}
	if s := strings.TrimSpace(r.AdmissionDate); s != "" {
		d, err := domain.ParseDate(s)
		if err != nil {
			return nil, domain.Validation("person_record.decode", "admission_date must be YYYY-MM-DD")
		}
		out.AdmissionDate = d
	}
	return out, nil
}

func (h *PersonRecordHandler) bind(c *gin.Context) (*domain.PersonRecord, bool) {
	var req personRecordRequest
	if !bindJSON(c, &req) {
		return nil, false
	}
	r, err := req.toDomain()
	if err != nil {
		fail(c, h.log, "decode person record", err)
		return nil, false
	}
	return r, true
}

// GET /person
func (h *PersonRecordHandler) List(c *gin.Context) {
	rows, err := h.svc.ListOrdered(c.Request.Context())
	if err != nil {
		fail(c, h.log, "list person records", err)
		return
	}
	out := make([]personRecordResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toRecordResponse(r))
	}
	response.RespondOK(c, out)
}

// GET /person/:id
func (h *PersonRecordHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	r, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		fail(c, h.log, "find person record", err)
		return
	}
	if r == nil {
		response.RespondError(c, http.StatusNotFound, "not_found", domain.NotFound("person_record.find", fmt.Sprintf("person %d not found", id)))
		return
	}
	response.RespondOK(c, toRecordResponse(r))
}

// POST /person
func (h *PersonRecordHandler) Create(c *gin.Context) {
	in, ok := h.bind(c)
	if !ok {
		return
	}
	r, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, h.log, "create person record", err)
		return
	}
	c.Header("Location", fmt.Sprintf("/person/%d", r.ID))
	response.RespondCreated(c, toRecordResponse(r))
}

// PUT /person/:id
func (h *PersonRecordHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	in, ok := h.bind(c)
	if !ok {
		return
	}
	r, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		fail(c, h.log, "update person record", err)
		return
	}
	response.RespondOK(c, toRecordResponse(r))
}

// PATCH /person/:id with {"field": "value", ...}
func (h *PersonRecordHandler) Patch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	values, keys, ok := patchFields(c)
	if !ok {
		return
	}
	var r *domain.PersonRecord
	for _, k := range keys {
		var err error
		r, err = h.svc.UpdateField(c.Request.Context(), id, k, values[k])
		if err != nil {
			fail(c, h.log, "patch person record", err)
			return
		}
	}
	response.RespondOK(c, toRecordResponse(r))
}

// DELETE /person/:id
func (h *PersonRecordHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.log, "delete person record", err)
		return
	}
	response.RespondNoContent(c)
}

// GET /person/:id/age?output=days|months|years
func (h *PersonRecordHandler) Age(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	age, err := h.svc.ComputeAge(c.Request.Context(), id, c.Query("output"))
	if err != nil {
		fail(c, h.log, "compute age", err)
		return
	}
	response.RespondOK(c, age)
}

// GET /person/:id/salary?output=full|min
func (h *PersonRecordHandler) Salary(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	salary, err := h.svc.ComputeSalary(c.Request.Context(), id, c.Query("output"))
	if err != nil {
		fail(c, h.log, "compute salary", err)
		return
	}
	response.RespondOK(c, salary)
}
