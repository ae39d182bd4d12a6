package controllers

import (
	"net/http"
	"strconv"

	"villa-backend/middleware"
	"villa-backend/models"
	"villa-backend/services"
	"villa-backend/utils"

	"github.com/gin-gonic/gin"
)

type SafariController struct {
	Safari *services.SafariService
}

func NewSafariController(svc *services.SafariService) *SafariController {
	return &SafariController{Safari: svc}
}

type safariStatusPayload struct {
	Status models.SafariStatus `json:"status" binding:"required,safari_status"`
}

type safariRespondPayload struct {
	Response string `json:"response" binding:"required"`
}

// GET /api/safari/options
func (sc *SafariController) Options(c *gin.Context) {
	opts, err := sc.Safari.ListSafariOptions(c.Request.Context(), !boolQuery(c, "all"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, opts)
}

func (sc *SafariController) CreateOption(c *gin.Context) {
	var in services.SafariOptionInput
	if !bindJSON(c, &in) {
		return
	}
	o, err := sc.Safari.CreateSafariOption(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, o)
}

func (sc *SafariController) UpdateOption(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var in services.SafariOptionInput
	if !bindJSON(c, &in) {
		return
	}
	o, err := sc.Safari.UpdateSafariOption(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, o)
}

// POST /api/safari/queries
func (sc *SafariController) CreateQuery(c *gin.Context) {
	var in services.SafariQueryInput
	if !bindJSON(c, &in) {
		return
	}
	q, err := sc.Safari.CreateQuery(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, q)
}

// GET /api/admin/safari/queries?status&safari_option_id&search
func (sc *SafariController) ListQueries(c *gin.Context) {
	f := services.SafariQueryFilter{
		Status: models.SafariStatus(c.Query("status")),
		Search: c.Query("search"),
	}
	if raw := c.Query("safari_option_id"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid safari_option_id")
			return
		}
		id := uint(n)
		f.SafariOptionID = &id
	}
	qs, err := sc.Safari.ListQueries(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, qs)
}

func (sc *SafariController) GetQuery(c *gin.Context) {
	q, err := sc.Safari.GetQuery(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, q)
}

func (sc *SafariController) UpdateQuery(c *gin.Context) {
	var p services.SafariQueryPatch
	if !bindJSON(c, &p) {
		return
	}
	q, err := sc.Safari.UpdateQuery(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, q)
}

func (sc *SafariController) UpdateStatus(c *gin.Context) {
	var p safariStatusPayload
	if !bindJSON(c, &p) {
		return
	}
	q, err := sc.Safari.UpdateQueryStatus(c.Request.Context(), c.Param("id"), p.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, q)
}

// POST /api/admin/safari/queries/:id/respond
func (sc *SafariController) Respond(c *gin.Context) {
	var p safariRespondPayload
	if !bindJSON(c, &p) {
		return
	}
	responder := c.GetString(middleware.ContextAdminEmail)
	q, err := sc.Safari.RespondToQuery(c.Request.Context(), c.Param("id"), p.Response, responder)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, q)
}

func (sc *SafariController) DeleteQuery(c *gin.Context) {
	if err := sc.Safari.DeleteQuery(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func (sc *SafariController) Stats(c *gin.Context) {
	stats, err := sc.Safari.QueryStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}
