package controllers

import (
	"net/http"

	"villa-backend/services"
	"villa-backend/utils"

	"github.com/gin-gonic/gin"
)

type PackageController struct {
	Packages *services.PackageService
}

func NewPackageController(svc *services.PackageService) *PackageController {
	return &PackageController{Packages: svc}
}

func (pc *PackageController) List(c *gin.Context) {
	pkgs, err := pc.Packages.ListPackages(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, pkgs)
}

func (pc *PackageController) Get(c *gin.Context) {
	p, err := pc.Packages.GetPackage(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, p)
}

func (pc *PackageController) Create(c *gin.Context) {
	var in services.PackageInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := pc.Packages.CreatePackage(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, p)
}

func (pc *PackageController) Update(c *gin.Context) {
	var in services.PackageInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := pc.Packages.UpdatePackage(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, p)
}

func (pc *PackageController) Delete(c *gin.Context) {
	if err := pc.Packages.DeletePackage(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func (pc *PackageController) Toggle(c *gin.Context) {
	p, err := pc.Packages.TogglePackageStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, p)
}
