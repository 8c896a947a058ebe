package routes

import (
	"savings-core/internal/handler"

	"github.com/gin-gonic/gin"
)

// RegisterSaveRoutes 注册储蓄表单路由
func RegisterSaveRoutes(rg *gin.RouterGroup, h *handler.SaveHandler) {
	sessions := rg.Group("/save/sessions")
	{
		sessions.POST("", h.CreateSession)
		sessions.GET("/:id", h.GetSession)
		sessions.DELETE("/:id", h.CloseSession)
		sessions.POST("/:id/amount", h.SetAmount)
		sessions.POST("/:id/max", h.SetMaxAmount)
		sessions.POST("/:id/toggle", h.Toggle)
		sessions.POST("/:id/approve", h.Approve)
		sessions.POST("/:id/submit", h.Submit)
		sessions.GET("/:id/transactions", h.History)
	}
}
