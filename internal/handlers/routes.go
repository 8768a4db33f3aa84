package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the withdrawal API on r.
func RegisterRoutes(r gin.IRouter, h *WithdrawalHandler) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome To GMAH Withdrawal service",
		})
	})

	api := r.Group("", RequireCaller())

	withdrawals := api.Group("/withdrawals")
	withdrawals.POST("", h.Create)
	withdrawals.GET("", h.List)
	withdrawals.GET("/:id", h.Get)
	withdrawals.PATCH("/:id", h.Update)
	withdrawals.DELETE("/:id", h.Delete)

	staff := withdrawals.Group("/:id", RequirePrivileged())
	staff.POST("/review", h.Review)
	staff.POST("/approve", h.Approve)
	staff.POST("/reject", h.Reject)
	staff.POST("/execute", h.Execute)
	staff.POST("/complete", h.Complete)

	api.GET("/treasury/impact", RequirePrivileged(), h.TreasuryImpact)
}
