package router

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewEngine() *gin.Engine {
	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	engine := gin.Default()

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Total-Count"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	return engine
}

func (h *Handler) RegisterRoutes(engine *gin.Engine) {
	api := engine.Group("/api")
	{
		api.GET("/health", h.HealthCheck)
		api.GET("/search", h.SearchSouvenirs)

		souvenirs := api.Group("/souvenirs")
		{
			souvenirs.GET("/", h.GetAllSouvenirs)
			souvenirs.POST("/", h.CreateSouvenirs)
			souvenirs.GET("/cheap", h.GetCheapSouvenirs)
			souvenirs.GET("/top-rated", h.GetTopRatedSouvenirs)
			souvenirs.GET("/count", h.GetSouvenirsCount)
			souvenirs.GET("/discussed", h.GetDiscussedSouvenirs)
			souvenirs.DELETE("/out-of-stock", h.PurgeOutOfStock)
			souvenirs.GET("/by-tag/:tag", h.GetSouvenirsByTag)

			byID := souvenirs.Group("/:id")
			byID.Use(SouvenirIDMiddleware())
			{
				byID.GET("", h.GetSouvenirByID)
				byID.POST("/reviews", h.AddReview)
			}
		}

		carts := api.Group("/carts")
		{
			carts.PUT("/:login", h.PutCart)
			carts.GET("/:login/total", h.GetCartTotal)
		}

		analytics := api.Group("/analytics")
		{
			analytics.GET("/countries", h.GetCountryStats)

			aiAnalytics := analytics.Group("/ai")
			{
				aiAnalytics.GET("/catalog-report", h.GetCatalogReport)
				aiAnalytics.GET("/review-insights", h.GetReviewInsights)
			}
		}
	}
}
