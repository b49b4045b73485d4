package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"license-hub/api/handler"
	"license-hub/api/middleware"
)

func RegisterRoutes(r *gin.Engine, auth middleware.Authenticator, authH *handler.AuthHandler, agreementH *handler.AgreementHandler, apiH *handler.APIHandler) {
	r.GET("/healthz", handler.Healthz)
	r.GET("/login", authH.LoginPage)
	r.POST("/login", authH.Login)
	r.POST("/logout", authH.Logout)

	pages := r.Group("/", middleware.RequireSession(auth))
	{
		pages.GET("", func(c *gin.Context) { c.Redirect(http.StatusSeeOther, "/agreements/new") })

		pages.GET("/agreements", agreementH.ListAgreements)
		pages.GET("/agreements/new", agreementH.NewAgreement)
		pages.POST("/agreements/scan", agreementH.ScanAgreement)
		pages.POST("/agreements", agreementH.SaveAgreement)
		pages.POST("/agreements/:id/status", agreementH.UpdateStatus)

		pages.GET("/amendments/new", agreementH.NewAmendment)
		pages.POST("/amendments/scan", agreementH.ScanAmendment)
		pages.POST("/amendments", agreementH.SaveAmendment)
	}

	api := r.Group("/api/v1", middleware.RequireSession(auth))
	{
		agreements := api.Group("/agreements")
		{
			agreements.GET("", apiH.List)
			agreements.GET("/:id", apiH.Get)
			agreements.PUT("/:id/status", apiH.UpdateStatus)
		}
	}
}
