package handlers

import (
	"net/http"

	"moveline/services/order"

	"github.com/gin-gonic/gin"
)

// GetCatalog returns the service and addon catalog with base prices.
func GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, order.GetCatalog())
}
