package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/person-backend/internal/domain"
	"github.com/yungbote/person-backend/internal/http/response"
	"github.com/yungbote/person-backend/internal/platform/ctxutil"
	"github.com/yungbote/person-backend/internal/platform/logger"
)

func parseID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", fmt.Errorf("invalid id %q", raw))
		return 0, false
	}
	return id, true
}

// fail writes the mapped error response and logs server-side failures.
func fail(c *gin.Context, log *logger.Logger, op string, err error) {
	ae := response.RespondDomainError(c, err)
	_ = c.Error(err)
	if ae.Status >= http.StatusInternalServerError && log != nil {
		log.Error(op+" failed", append(ctxutil.LogFields(c.Request.Context()), "error", err)...)
	}
}

// patchFields reads a {"field": "value"} body and returns its keys sorted so
// updates apply in a stable order.
func patchFields(c *gin.Context) (map[string]string, []string, bool) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_failed", domain.Validation("patch", "body must be a JSON object"))
		return nil, nil, false
	}
	if len(raw) == 0 {
		response.RespondError(c, http.StatusBadRequest, "validation_failed", domain.Validation("patch", "at least one field is required"))
		return nil, nil, false
	}
	values := make(map[string]string, len(raw))
	keys := make([]string, 0, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case string:
			values[k] = t
		case nil:
			values[k] = ""
		default:
			response.RespondError(c, http.StatusBadRequest, "validation_failed", domain.Validation("patch", fmt.Sprintf("field %q must be a string", k)))
			return nil, nil, false
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return values, keys, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.RespondError(c, http.StatusRequestEntityTooLarge, "payload_too_large", err)
			return false
		}
		response.RespondError(c, http.StatusBadRequest, "validation_failed", domain.Validation("decode", "malformed JSON body"))
		return false
	}
	return true
}
