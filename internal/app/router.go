package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"driftlab.io/driftlab/internal/api/handlers"
	"driftlab.io/driftlab/internal/api/middleware"
	"driftlab.io/driftlab/internal/api/xmlapi"
)

func newRouter(rest *handlers.Server, xml *xmlapi.Server, graphql gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.ErrorHandler())

	// Permissive CORS: the fixture is hit from scanner UIs and browser
	// tooling on arbitrary origins. Credentials stay off, gin-contrib
	// refuses AllowAllOrigins combined with credentials.
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	router.Use(cors.New(corsCfg))

	router.GET("/", rest.GetRoot)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/graphql", graphql)

	api := router.Group("/api")
	{
		api.POST("/orders", rest.CreateOrder)
		api.GET("/orders/:id", rest.GetOrder)
		api.PUT("/orders/:id/ship", rest.ShipOrder)
		api.DELETE("/orders/:id", rest.CancelOrder)

		api.POST("/jobs", rest.CreateJob)
		api.GET("/jobs/:id", rest.GetJob)
		api.GET("/jobs/:id/result", rest.GetJobResult)

		api.POST("/resources", rest.CreateResource)
		api.GET("/resources/:id", rest.GetResource)
		api.POST("/resources/:id/connect", rest.ConnectResource)

		api.POST("/users", rest.CreateUser)
		api.GET("/users/:id", rest.GetUser)
		api.GET("/users/:id/public", rest.GetUserPublic)
		api.GET("/search", rest.SearchUsers)
		api.GET("/analytics/users", rest.GetUserAnalytics)
		api.GET("/feed", rest.GetFeed)

		api.POST("/comments", rest.CreateComment)
		api.GET("/posts/:id/comments", rest.GetPostComments)
		api.GET("/comments/recent", rest.GetRecentComments)

		api.POST("/webhooks/register", rest.RegisterWebhook)
		api.GET("/webhooks/events", rest.GetWebhookEvents)

		api.GET("/flaky", rest.GetFlaky)
		api.GET("/rate-limited", rest.GetRateLimited)

		api.GET("/health", rest.GetHealth)
		api.POST("/reset", rest.Reset)
	}

	x := router.Group("/xml")
	{
		x.POST("/orders", xml.CreateOrder)
		x.GET("/orders/:id", xml.GetOrder)
		x.PUT("/orders/:id/ship", xml.ShipOrder)

		x.POST("/jobs", xml.CreateJob)
		x.GET("/jobs/:id", xml.GetJob)

		x.POST("/resources", xml.CreateResource)
		x.GET("/resources/:id", xml.GetResource)

		x.POST("/users", xml.CreateUser)
		x.GET("/users/:id", xml.GetUser)

		x.POST("/comments", xml.CreateComment)
		x.GET("/posts/:id/comments", xml.GetPostComments)
		x.GET("/feed", xml.GetFeed)
	}

	return router
}
