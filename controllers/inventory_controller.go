package controllers

import (
	"net/http"
	"strings"
	"time"

	"villa-backend/services"
	"villa-backend/utils"

	"github.com/gin-gonic/gin"
)

type InventoryController struct {
	Inventory *services.InventoryService
	Occupancy *services.OccupancyService
}

func NewInventoryController(inv *services.InventoryService, occ *services.OccupancyService) *InventoryController {
	return &InventoryController{Inventory: inv, Occupancy: occ}
}

// GET /api/availability?villa_id&check_in&check_out
func (ic *InventoryController) Availability(c *gin.Context) {
	villaID := strings.TrimSpace(c.Query("villa_id"))
	if villaID == "" {
		utils.JSONError(c, http.StatusBadRequest, "villa_id is required")
		return
	}
	in, err := services.ParseDate(c.Query("check_in"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid check_in, expected YYYY-MM-DD")
		return
	}
	out, err := services.ParseDate(c.Query("check_out"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid check_out, expected YYYY-MM-DD")
		return
	}
	a, err := ic.Inventory.GetAvailableUnits(c.Request.Context(), villaID, in, out)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, a)
}

// GET /api/availability/calendar?villa_id&month=YYYY-MM
func (ic *InventoryController) Calendar(c *gin.Context) {
	villaID := strings.TrimSpace(c.Query("villa_id"))
	if villaID == "" {
		utils.JSONError(c, http.StatusBadRequest, "villa_id is required")
		return
	}
	month := c.Query("month")
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}
	cal, err := ic.Occupancy.GetAvailabilityCalendar(c.Request.Context(), villaID, month)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, cal)
}

// GET /api/admin/units?villa_id
func (ic *InventoryController) ListUnits(c *gin.Context) {
	units, err := ic.Inventory.ListUnits(c.Request.Context(), c.Query("villa_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]services.UnitView, 0, len(units))
	for _, u := range units {
		out = append(out, services.NewUnitView(u))
	}
	utils.JSONSuccess(c, http.StatusOK, out)
}

func (ic *InventoryController) CreateUnit(c *gin.Context) {
	var in services.UnitInput
	if !bindJSON(c, &in) {
		return
	}
	u, err := ic.Inventory.CreateUnit(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, services.NewUnitView(*u))
}

func (ic *InventoryController) UpdateUnit(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var in services.UnitInput
	if !bindJSON(c, &in) {
		return
	}
	u, err := ic.Inventory.UpdateUnit(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, services.NewUnitView(*u))
}

func (ic *InventoryController) DeleteUnit(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ic.Inventory.DeleteUnit(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// GET /api/admin/blocks?villa_id&from&to
func (ic *InventoryController) ListBlocks(c *gin.Context) {
	from, ok := dateQuery(c, "from")
	if !ok {
		return
	}
	to := from.AddDate(0, 1, 0)
	if c.Query("to") != "" {
		if to, ok = dateQuery(c, "to"); !ok {
			return
		}
	}
	blocks, err := ic.Inventory.ListBlocks(c.Request.Context(), c.Query("villa_id"), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, blocks)
}

func (ic *InventoryController) CreateBlock(c *gin.Context) {
	var in services.BlockInput
	if !bindJSON(c, &in) {
		return
	}
	b, err := ic.Inventory.CreateBlock(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, b)
}

func (ic *InventoryController) DeleteBlock(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ic.Inventory.DeleteBlock(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
