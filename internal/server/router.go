package server

import (
	"net/http"

	application "tender-tracker/internal/applicationService"
	"tender-tracker/internal/filestore"
	"tender-tracker/internal/repository"
	tender "tender-tracker/internal/tenderService"
	handler "tender-tracker/services/tenders/handler"

	"github.com/gin-gonic/gin"
)

// Deps bundles everything the router needs.
type Deps struct {
	Tenders      *tender.Service
	Applications *application.Service
	Store        repository.ProcurementDB
	Files        filestore.Store
	UploadDir    string
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(deps Deps) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	tenderHandler := handler.NewTenderHandler(deps.Tenders)
	applicationHandler := handler.NewApplicationHandler(deps.Applications)
	notificationHandler := handler.NewNotificationHandler(deps.Store)
	uploadHandler := handler.NewUploadHandler(deps.Files)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.Static("/uploads", deps.UploadDir)

	// Browsing tenders needs no identity.
	router.GET("/tenders", tenderHandler.ListTendersHandler)
	router.GET("/tenders/:tender_id", tenderHandler.GetTenderHandler)

	authed := router.Group("")
	authed.Use(IdentityMiddleware)
	{
		tenders := authed.Group("/tenders")
		{
			tenders.POST("", tenderHandler.CreateTenderHandler)
			tenders.GET("/mine", tenderHandler.ListMyTendersHandler)
			tenders.GET("/bidders", tenderHandler.ListBiddersHandler)
			tenders.PUT("/:tender_id", tenderHandler.UpdateTenderHandler)
			tenders.DELETE("/:tender_id", tenderHandler.DeleteTenderHandler)
			tenders.POST("/:tender_id/applications", applicationHandler.SubmitApplicationHandler)
			tenders.GET("/:tender_id/applications", applicationHandler.ListTenderApplicationsHandler)
		}

		applications := authed.Group("/applications")
		{
			applications.GET("/mine", applicationHandler.ListMyApplicationsHandler)
			applications.GET("/:application_id", applicationHandler.GetApplicationHandler)
			applications.PATCH("/:application_id/status", applicationHandler.SetApplicationStatusHandler)
			applications.POST("/:application_id/withdraw", applicationHandler.WithdrawApplicationHandler)
		}

		notifications := authed.Group("/notifications")
		{
			notifications.GET("", notificationHandler.ListNotificationsHandler)
			notifications.PATCH("/:notification_id/read", notificationHandler.MarkNotificationReadHandler)
			notifications.POST("/read-all", notificationHandler.MarkAllNotificationsReadHandler)
			notifications.DELETE("", notificationHandler.ClearNotificationsHandler)
		}

		authed.POST("/uploads", uploadHandler.UploadFilesHandler)
	}

	return router
}
