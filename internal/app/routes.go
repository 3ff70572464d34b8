package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Routes registers the API on router. The OAuth callback, health and metrics
// endpoints are public; everything under /api goes through auth.
func (a *App) Routes(router *gin.Engine, auth gin.HandlerFunc, db pinger, metrics http.Handler) error {
	if err := registerValidators(); err != nil {
		return err
	}

	router.GET("/health", handleHealth(db))
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}
	router.GET("/oauth2callback", a.GoogleOAuth2CallbackHandler)

	api := router.Group("/api", auth)
	{
		users := api.Group("/users")
		{
			users.GET("/:id/availability", a.GetAvailabilityHandler)
			users.PUT("/:id/availability", a.ReplaceAvailabilityHandler)
			users.GET("/:id/slots", a.GetSlotsHandler)
			users.GET("/:id/unavailability", a.ListUnavailabilityHandler)
			users.POST("/:id/unavailability", a.CreateUnavailabilityHandler)
			users.POST("/:id/unavailability/google-import", a.GoogleImportHandler)
		}
		api.DELETE("/availability/:id", a.DeleteAvailabilityWindowHandler)
		api.DELETE("/unavailability/:id", a.DeleteUnavailabilityHandler)

		meetings := api.Group("/meetings")
		{
			meetings.POST("", a.RequestMeetingHandler)
			meetings.GET("", a.ListMeetingsHandler)
			meetings.GET("/:id", a.GetMeetingHandler)
			meetings.PUT("/:id/accept", a.AcceptMeetingHandler)
			meetings.PUT("/:id/decline", a.DeclineMeetingHandler)
			meetings.PUT("/:id/cancel", a.CancelMeetingHandler)
			meetings.POST("/:id/feedback", a.SubmitFeedbackHandler)
		}

		api.GET("/calendar/auth", a.GoogleAuthHandler)
	}
	return nil
}

func handleHealth(db pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			if err := db.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
