package controllers

import (
	"net/http"

	"villa-backend/services"
	"villa-backend/utils"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Admin         *services.AdminService
	Seed          *services.SeedService
	AdminEmail    string
	AdminPassword string
}

func NewAdminController(admin *services.AdminService, seed *services.SeedService, adminEmail, adminPassword string) *AdminController {
	return &AdminController{Admin: admin, Seed: seed, AdminEmail: adminEmail, AdminPassword: adminPassword}
}

// GET /api/status reports which integrations run in demo mode.
func (ac *AdminController) Status(c *gin.Context) {
	in := ac.Admin.Integrations
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"database":        in.Database && ac.Admin.DB != nil,
			"payment_gateway": in.Payment,
			"email_service":   in.Email,
		},
	})
}

// GET /api/admin/dashboard?fresh=1
func (ac *AdminController) Dashboard(c *gin.Context) {
	stats, err := ac.Admin.DashboardStats(c.Request.Context(), boolQuery(c, "fresh"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}

// POST /api/admin/seed
func (ac *AdminController) RunSeed(c *gin.Context) {
	res, err := ac.Seed.EnsureSeedData(c.Request.Context(), ac.AdminEmail, ac.AdminPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

func (ac *AdminController) ListAdmins(c *gin.Context) {
	admins, err := ac.Admin.ListAdmins(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, admins)
}

func (ac *AdminController) CreateAdmin(c *gin.Context) {
	var in services.AdminInput
	if !bindJSON(c, &in) {
		return
	}
	admin, err := ac.Admin.CreateAdmin(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, admin)
}

func (ac *AdminController) DeleteAdmin(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ac.Admin.DeleteAdmin(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
