package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

// JSONSuccessWarning is a success that still needs the admin's attention,
// e.g. a status change whose room assignment failed.
func JSONSuccessWarning(c *gin.Context, code int, data interface{}, warning string) {
	if warning == "" {
		JSONSuccess(c, code, data)
		return
	}
	c.JSON(code, gin.H{"success": true, "data": data, "warning": warning})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}
