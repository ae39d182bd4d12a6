package controllers

import (
	"net/http"
	"time"

	"villa-backend/services"
	"villa-backend/utils"

	"github.com/gin-gonic/gin"
)

type VillaController struct {
	Villas *services.VillaService
}

func NewVillaController(svc *services.VillaService) *VillaController {
	return &VillaController{Villas: svc}
}

// GET /api/villas
func (vc *VillaController) List(c *gin.Context) {
	villas, err := vc.Villas.ListVillas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, villas)
}

// GET /api/villas/:id
func (vc *VillaController) Get(c *gin.Context) {
	v, err := vc.Villas.GetVilla(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, v)
}

func (vc *VillaController) Create(c *gin.Context) {
	var in services.VillaInput
	if !bindJSON(c, &in) {
		return
	}
	v, err := vc.Villas.CreateVilla(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, v)
}

func (vc *VillaController) Update(c *gin.Context) {
	var in services.VillaInput
	if !bindJSON(c, &in) {
		return
	}
	v, err := vc.Villas.UpdateVilla(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, v)
}

func (vc *VillaController) Delete(c *gin.Context) {
	if err := vc.Villas.DeleteVilla(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// PATCH /api/admin/villas/:id/toggle
func (vc *VillaController) Toggle(c *gin.Context) {
	v, err := vc.Villas.ToggleVillaStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, v)
}

// GET /api/admin/villas/:id/stats
func (vc *VillaController) Stats(c *gin.Context) {
	stats, err := vc.Villas.GetVillaStats(c.Request.Context(), c.Param("id"), time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}
