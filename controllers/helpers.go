package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"villa-backend/services"
	"villa-backend/utils"

	"github.com/gin-gonic/gin"
)

func statusForCode(code string) int {
	switch code {
	case services.CodeNotConfigured:
		return http.StatusServiceUnavailable
	case services.CodeNotFound:
		return http.StatusNotFound
	case services.CodeConflict, services.CodeHasBookings, services.CodeUnavailable:
		return http.StatusConflict
	case services.CodeValidation:
		return http.StatusBadRequest
	case services.CodeInvalidTransition:
		return http.StatusUnprocessableEntity
	case services.CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError renders a service error as {"success": false, "error": ...}.
func respondError(c *gin.Context, err error) {
	var se *services.ServiceError
	if !errors.As(err, &se) {
		se = services.ClassifyDBError(err)
	}
	status := statusForCode(se.Code)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"success": false, "error": se.Message, "code": se.Code})
}

// bindJSON binds the body and writes a 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		log.Printf("❌ JSON BINDING ERROR (400) %s: %v", c.Request.URL.Path, err)
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid "+name+": "+raw)
		return 0, false
	}
	return uint(n), true
}

// dateQuery reads a YYYY-MM-DD query value, defaulting to today (UTC).
func dateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return time.Now().UTC(), true
	}
	d, err := services.ParseDate(raw)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid "+name+", expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return d, true
}

func optionalDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	d, err := services.ParseDate(raw)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid "+name+", expected YYYY-MM-DD")
		return nil, false
	}
	return &d, true
}

func intQuery(c *gin.Context, name string, def int) int {
	if n, err := strconv.Atoi(c.Query(name)); err == nil && n >= 0 {
		return n
	}
	return def
}

func boolQuery(c *gin.Context, name string) bool {
	switch strings.ToLower(c.Query(name)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
