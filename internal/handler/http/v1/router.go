package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Кнопки уведомления аутентифицируются подписанным токеном, без API-ключа
	api.POST("/actions", h.applyAction)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)

	protected := api.Group("", APIKeyAuthMiddleware(h.cfg, h.logger))
	{
		protected.POST("/location/samples", h.submitLocationSample)

		checkins := protected.Group("/checkins")
		{
			checkins.POST("/respond", h.respondCheckIn)
			checkins.POST("/timeout", h.signalTimeout)
		}

		protected.GET("/users/:id/status", h.getUserStatus)
		protected.GET("/families/:id/members", h.getFamilyMembers)
	}
}
