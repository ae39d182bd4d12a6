package controllers

import (
	"bytes"
	"net/http"
	"strings"

	"villa-backend/services"
	"villa-backend/utils"

	"github.com/gin-gonic/gin"
)

type OccupancyController struct {
	Occupancy *services.OccupancyService
}

func NewOccupancyController(svc *services.OccupancyService) *OccupancyController {
	return &OccupancyController{Occupancy: svc}
}

// GET /api/admin/occupancy?date
func (oc *OccupancyController) Get(c *gin.Context) {
	date, ok := dateQuery(c, "date")
	if !ok {
		return
	}
	r, err := oc.Occupancy.GetOccupancy(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, r)
}

// GET /api/admin/occupancy/range?from&to
func (oc *OccupancyController) Range(c *gin.Context) {
	reports, ok := oc.rangeReports(c)
	if !ok {
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reports)
}

// GET /api/admin/occupancy/rooms?villa_id&date
func (oc *OccupancyController) RoomWise(c *gin.Context) {
	villaID := strings.TrimSpace(c.Query("villa_id"))
	if villaID == "" {
		utils.JSONError(c, http.StatusBadRequest, "villa_id is required")
		return
	}
	date, ok := dateQuery(c, "date")
	if !ok {
		return
	}
	r, err := oc.Occupancy.GetRoomWiseOccupancy(c.Request.Context(), villaID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, r)
}

// GET /api/admin/occupancy/export.csv?from&to
func (oc *OccupancyController) Export(c *gin.Context) {
	reports, ok := oc.rangeReports(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := services.WriteOccupancyCSV(&buf, reports); err != nil {
		respondError(c, err)
		return
	}
	name := "occupancy-" + reports[0].Date + "-to-" + reports[len(reports)-1].Date + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (oc *OccupancyController) rangeReports(c *gin.Context) ([]services.OccupancyReport, bool) {
	from, ok := dateQuery(c, "from")
	if !ok {
		return nil, false
	}
	to := from.AddDate(0, 0, 6)
	if c.Query("to") != "" {
		if to, ok = dateQuery(c, "to"); !ok {
			return nil, false
		}
	}
	reports, err := oc.Occupancy.GetOccupancyRange(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return reports, true
}
