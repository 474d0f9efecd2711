package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/person-backend/internal/data/repos/person"
	"github.com/yungbote/person-backend/internal/data/repos/personrecord"
	"github.com/yungbote/person-backend/internal/domain"
	"github.com/yungbote/person-backend/internal/platform/logger"
	"github.com/yungbote/person-backend/internal/services"
)

var fixedToday = time.Date(2025, 10, 7, 12, 0, 0, 0, time.UTC)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

type testEnv struct {
	engine  *gin.Engine
	persons *person.MemoryStore
	records *personrecord.MemoryStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := newTestLogger(t)

	persons := person.NewMemoryStore(log)
	records := personrecord.NewMemoryStore(log)
	ph := NewPersonHandler(log, services.NewPersonService(log, persons))
	rh := NewPersonRecordHandler(log, services.NewPersonRecordService(log, records, func() time.Time { return fixedToday }))
	mh := NewMemoryMapHandler(persons)

	r := gin.New()
	r.POST("/api/v1/persons", ph.Create)
	r.GET("/api/v1/persons", ph.List)
	r.GET("/api/v1/persons/search", ph.Search)
	r.GET("/api/v1/persons/count", ph.Count)
	r.GET("/api/v1/persons/document/:document_id", ph.GetByDocument)
	r.GET("/api/v1/persons/:id", ph.Get)
	r.PUT("/api/v1/persons/:id", ph.Update)
	r.PATCH("/api/v1/persons/:id", ph.Patch)
	r.DELETE("/api/v1/persons/:id", ph.Delete)
	r.GET("/api/v1/memory-map/stats", mh.Stats)
	r.GET("/api/v1/memory-map/content", mh.Content)
	r.GET("/person", rh.List)
	r.POST("/person", rh.Create)
	r.GET("/person/:id", rh.Get)
	r.PUT("/person/:id", rh.Update)
	r.PATCH("/person/:id", rh.Patch)
	r.DELETE("/person/:id", rh.Delete)
	r.GET("/person/:id/age", rh.Age)
	r.GET("/person/:id/salary", rh.Salary)

	return &testEnv{engine: r, persons: persons, records: records}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr *bytes.Reader
	if body != "" {
		rdr = bytes.NewReader([]byte(body))
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var env struct {
		Error map[string]interface{} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return env.Error
}

func (e *testEnv) seedRecord(t *testing.T) {
	t.Helper()
	_, err := e.records.Save(context.Background(), &domain.PersonRecord{
		ID:            1,
		Name:          "José da Silva",
		BirthDate:     domain.NewDate(time.Date(2000, 4, 6, 0, 0, 0, 0, time.UTC)),
		AdmissionDate: domain.NewDate(time.Date(2020, 5, 10, 0, 0, 0, 0, time.UTC)),
	})
	if err != nil {
		t.Fatalf("seed record: %v", err)
	}
}

const joaoBody = `{"name":"João Silva","document_id":"123.456.789-09","email":"joao@example.com","phone":"(11) 98765-4321"}`

func TestPersonCreateAndGet(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/persons", joaoBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status=%d body=%s", rec.Code, rec.Body.String())
	}
	var created domain.Person
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID != 1 || created.DocumentID != "12345678909" {
		t.Fatalf("unexpected person: %+v", created)
	}
	if loc := rec.Header().Get("Location"); loc != "/api/v1/persons/1" {
		t.Fatalf("location=%q", loc)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/persons/1", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "João Silva") {
		t.Fatalf("get: status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/v1/persons/document/12345678909", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get by document: status=%d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/persons/count", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "1" {
		t.Fatalf("count: status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestPersonCreateConflictAndValidation(t *testing.T) {
	env := newTestEnv(t)
	if rec := env.do(t, http.MethodPost, "/api/v1/persons", joaoBody); rec.Code != http.StatusCreated {
		t.Fatalf("seed: status=%d", rec.Code)
	}

	rec := env.do(t, http.MethodPost, "/api/v1/persons", joaoBody)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate: status=%d want=409", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/v1/persons", `{"name":"A","document_id":"12345678909"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("short name: status=%d want=400", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/v1/persons", `{"name":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed: status=%d want=400", rec.Code)
	}
}

func TestPersonNotFoundAndBadID(t *testing.T) {
	env := newTestEnv(t)

	if rec := env.do(t, http.MethodGet, "/api/v1/persons/99", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("missing: status=%d want=404", rec.Code)
	}
	if rec := env.do(t, http.MethodGet, "/api/v1/persons/abc", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id: status=%d want=400", rec.Code)
	}
	if rec := env.do(t, http.MethodDelete, "/api/v1/persons/99", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("delete missing: status=%d want=404", rec.Code)
	}
	if rec := env.do(t, http.MethodGet, "/api/v1/persons/document/00000000000", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("missing document: status=%d want=404", rec.Code)
	}
}

func TestPersonPatchAppliesFields(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/v1/persons", joaoBody)

	rec := env.do(t, http.MethodPatch, "/api/v1/persons/1", `{"name":"João S. Silva","email":"js@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: status=%d body=%s", rec.Code, rec.Body.String())
	}
	p, _ := env.persons.FindByID(context.Background(), 1)
	if p.Name != "João S. Silva" || p.Email != "js@example.com" {
		t.Fatalf("patch not applied: %+v", p)
	}

	rec = env.do(t, http.MethodPatch, "/api/v1/persons/1", `{"salary":"10"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown field: status=%d want=400", rec.Code)
	}
	if allowed := decodeError(t, rec)["allowed"]; allowed == nil {
		t.Fatalf("expected allowed values in %s", rec.Body.String())
	}

	if rec := env.do(t, http.MethodPatch, "/api/v1/persons/1", `{}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("empty patch: status=%d want=400", rec.Code)
	}
	if rec := env.do(t, http.MethodPatch, "/api/v1/persons/1", `{"name":5}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("non-string value: status=%d want=400", rec.Code)
	}
}

func TestPersonSearchRequiresName(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/v1/persons", joaoBody)

	if rec := env.do(t, http.MethodGet, "/api/v1/persons/search", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("no query: status=%d want=400", rec.Code)
	}
	rec := env.do(t, http.MethodGet, "/api/v1/persons/search?name=silva", "")
	var rows []domain.Person
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("search rows=%d want=1", len(rows))
	}
}

func TestPersonDelete(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/v1/persons", joaoBody)

	if rec := env.do(t, http.MethodDelete, "/api/v1/persons/1", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status=%d want=204", rec.Code)
	}
	if rec := env.do(t, http.MethodGet, "/api/v1/persons/1", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("after delete: status=%d want=404", rec.Code)
	}
}

func TestMemoryMapStats(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/v1/persons", joaoBody)

	rec := env.do(t, http.MethodGet, "/api/v1/memory-map/stats", "")
	var stats person.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.TotalPersons != 1 || stats.NextID != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/memory-map/content", "")
	if !strings.Contains(rec.Body.String(), `"1"`) {
		t.Fatalf("content missing id key: %s", rec.Body.String())
	}
}

func TestPersonRecordAgeAndSalary(t *testing.T) {
	env := newTestEnv(t)
	env.seedRecord(t)

	cases := []struct {
		path string
		want string
	}{
		{"/person/1/age?output=years", "25"},
		{"/person/1/age?output=months", "306"},
		{"/person/1/age?output=days", "9315"},
		{"/person/1/salary?output=full", "7141.43"},
		{"/person/1/salary?output=min", "5.49"},
	}
	for _, tc := range cases {
		rec := env.do(t, http.MethodGet, tc.path, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status=%d body=%s", tc.path, rec.Code, rec.Body.String())
		}
		if got := strings.TrimSpace(rec.Body.String()); got != tc.want {
			t.Fatalf("%s: got=%s want=%s", tc.path, got, tc.want)
		}
	}
}

func TestPersonRecordInvalidSelector(t *testing.T) {
	env := newTestEnv(t)
	env.seedRecord(t)

	rec := env.do(t, http.MethodGet, "/person/1/age?output=weeks", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=400", rec.Code)
	}
	allowed, _ := decodeError(t, rec)["allowed"].([]interface{})
	if len(allowed) != 3 {
		t.Fatalf("allowed=%v", allowed)
	}

	if rec := env.do(t, http.MethodGet, "/person/7/salary?output=full", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("missing record: status=%d want=404", rec.Code)
	}
}

func TestPersonRecordCreateAndList(t *testing.T) {
	env := newTestEnv(t)
	env.seedRecord(t)

	rec := env.do(t, http.MethodPost, "/person", `{"name":"Ana Lima","birth_date":"1995-02-10","admission_date":"2019-03-01"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status=%d body=%s", rec.Code, rec.Body.String())
	}
	var created personRecordResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID != 2 || created.BirthDate != "1995-02-10" {
		t.Fatalf("unexpected record: %+v", created)
	}

	rec = env.do(t, http.MethodGet, "/person", "")
	var rows []personRecordResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 || rows[0].Name != "Ana Lima" {
		t.Fatalf("unexpected ordering: %+v", rows)
	}

	rec = env.do(t, http.MethodPost, "/person", `{"name":"Bad Date","birth_date":"10/02/1995","admission_date":"2019-03-01"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date: status=%d want=400", rec.Code)
	}
}

func TestPersonRecordPatchAndDelete(t *testing.T) {
	env := newTestEnv(t)
	env.seedRecord(t)

	rec := env.do(t, http.MethodPatch, "/person/1", `{"admission_date":"2021-05-10"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: status=%d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"admission_date":"2021-05-10"`) {
		t.Fatalf("patch not reflected: %s", rec.Body.String())
	}

	if rec := env.do(t, http.MethodDelete, "/person/1", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status=%d", rec.Code)
	}
	if rec := env.do(t, http.MethodDelete, "/person/1", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: status=%d want=404", rec.Code)
	}
}

func TestReadyReportsFailingCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHealthHandler("person-backend", "test", map[string]Check{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	})
	r := gin.New()
	r.GET("/ready", h.Ready)
	r.GET("/health", h.Health)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("ready: status=%d want=503", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "connection refused") {
		t.Fatalf("missing check detail: %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"UP"`) {
		t.Fatalf("health: status=%d body=%s", rec.Code, rec.Body.String())
	}
}
