package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"villa-backend/controllers"
	"villa-backend/middleware"
)

// Controllers bundles every handler group the router mounts.
type Controllers struct {
	Villas    *controllers.VillaController
	Packages  *controllers.PackageController
	Bookings  *controllers.BookingController
	Inventory *controllers.InventoryController
	Occupancy *controllers.OccupancyController
	Safari    *controllers.SafariController
	Admin     *controllers.AdminController
	Auth      *controllers.AuthController
}

func normalizeOrigins(raw []string) []string {
	origins := make([]string, 0, len(raw))
	for _, part := range raw {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter mounts the public API, the JWT-protected admin API and /health.
func SetupRouter(ctl Controllers, corsOrigins []string, jwtSecret string) *gin.Engine {
	middleware.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	origins := normalizeOrigins(corsOrigins)
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/status", ctl.Admin.Status)

		api.GET("/villas", ctl.Villas.List)
		api.GET("/villas/:id", ctl.Villas.Get)
		api.GET("/packages", ctl.Packages.List)
		api.GET("/packages/:id", ctl.Packages.Get)

		api.GET("/availability", ctl.Inventory.Availability)
		api.GET("/availability/calendar", ctl.Inventory.Calendar)

		bookings := api.Group("/bookings")
		{
			// /quote must be registered before /:ref
			bookings.POST("/quote", ctl.Bookings.Quote)
			bookings.POST("", ctl.Bookings.CreatePublic)
			bookings.GET("/:ref", ctl.Bookings.GetPublic)
		}

		api.POST("/holds", ctl.Bookings.CreateHold)
		api.DELETE("/holds/:id", ctl.Bookings.ReleaseHold)

		api.GET("/safari/options", ctl.Safari.Options)
		api.POST("/safari/queries", ctl.Safari.CreateQuery)

		auth := api.Group("/auth")
		{
			auth.POST("/login", ctl.Auth.Login)
			auth.GET("/me", middleware.RequireAdmin(jwtSecret), ctl.Auth.Me)
		}
	}

	admin := api.Group("/admin", middleware.RequireAdmin(jwtSecret))
	{
		admin.GET("/dashboard", ctl.Admin.Dashboard)
		admin.POST("/seed", ctl.Admin.RunSeed)

		admins := admin.Group("/admins")
		{
			admins.GET("", ctl.Admin.ListAdmins)
			admins.POST("", ctl.Admin.CreateAdmin)
			admins.DELETE("/:id", ctl.Admin.DeleteAdmin)
		}

		villas := admin.Group("/villas")
		{
			villas.GET("", ctl.Villas.List)
			villas.POST("", ctl.Villas.Create)
			villas.GET("/:id", ctl.Villas.Get)
			villas.PUT("/:id", ctl.Villas.Update)
			villas.DELETE("/:id", ctl.Villas.Delete)
			villas.PATCH("/:id/toggle", ctl.Villas.Toggle)
			villas.GET("/:id/stats", ctl.Villas.Stats)
		}

		packages := admin.Group("/packages")
		{
			packages.GET("", ctl.Packages.List)
			packages.POST("", ctl.Packages.Create)
			packages.GET("/:id", ctl.Packages.Get)
			packages.PUT("/:id", ctl.Packages.Update)
			packages.DELETE("/:id", ctl.Packages.Delete)
			packages.PATCH("/:id/toggle", ctl.Packages.Toggle)
		}

		bookings := admin.Group("/bookings")
		{
			bookings.GET("", ctl.Bookings.List)
			bookings.POST("", ctl.Bookings.Create)
			// static paths before /:id
			bookings.GET("/export.csv", ctl.Bookings.Export)
			bookings.PATCH("/bulk/status", ctl.Bookings.BulkStatus)
			bookings.GET("/:id", ctl.Bookings.Get)
			bookings.PUT("/:id", ctl.Bookings.Update)
			bookings.DELETE("/:id", ctl.Bookings.Delete)
			bookings.PATCH("/:id/status", ctl.Bookings.UpdateStatus)
			bookings.PATCH("/:id/payment", ctl.Bookings.UpdatePayment)
		}

		units := admin.Group("/units")
		{
			units.GET("", ctl.Inventory.ListUnits)
			units.POST("", ctl.Inventory.CreateUnit)
			units.PUT("/:id", ctl.Inventory.UpdateUnit)
			units.DELETE("/:id", ctl.Inventory.DeleteUnit)
		}

		blocks := admin.Group("/blocks")
		{
			blocks.GET("", ctl.Inventory.ListBlocks)
			blocks.POST("", ctl.Inventory.CreateBlock)
			blocks.DELETE("/:id", ctl.Inventory.DeleteBlock)
		}

		occupancy := admin.Group("/occupancy")
		{
			occupancy.GET("", ctl.Occupancy.Get)
			occupancy.GET("/range", ctl.Occupancy.Range)
			occupancy.GET("/rooms", ctl.Occupancy.RoomWise)
			occupancy.GET("/export.csv", ctl.Occupancy.Export)
		}

		safari := admin.Group("/safari")
		{
			safari.POST("/options", ctl.Safari.CreateOption)
			safari.PUT("/options/:id", ctl.Safari.UpdateOption)

			safari.GET("/queries", ctl.Safari.ListQueries)
			safari.GET("/queries/stats", ctl.Safari.Stats)
			safari.GET("/queries/:id", ctl.Safari.GetQuery)
			safari.PUT("/queries/:id", ctl.Safari.UpdateQuery)
			safari.PATCH("/queries/:id/status", ctl.Safari.UpdateStatus)
			safari.POST("/queries/:id/respond", ctl.Safari.Respond)
			safari.DELETE("/queries/:id", ctl.Safari.DeleteQuery)
		}
	}

	return r
}
