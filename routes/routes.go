package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go-kiezmap/config"
	"go-kiezmap/dashboard"
	"go-kiezmap/handlers"
	"go-kiezmap/session"
	"go-kiezmap/web"
)

func SetupRouter(cfg *config.Config, svc *dashboard.Service, sessions *session.Store) (*gin.Engine, error) {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(web.Static()))

	r.GET("/healthcheck", handlers.HealthCheck)

	// views
	r.GET("/", func(c *gin.Context) {
		handlers.ShowPage(c, svc, sessions, handlers.TabMap)
	})
	r.POST("/search", func(c *gin.Context) {
		handlers.Search(c, svc, sessions)
	})
	r.POST("/layers", func(c *gin.Context) {
		handlers.SetLayers(c, svc, sessions)
	})

	r.GET("/board", func(c *gin.Context) {
		handlers.ShowPage(c, svc, sessions, handlers.TabBoard)
	})
	r.POST("/board", func(c *gin.Context) {
		handlers.AddRecommendation(c, svc, sessions)
	})
	r.POST("/board/:id/replies", func(c *gin.Context) {
		handlers.AddReply(c, svc, sessions)
	})

	r.GET("/chat", func(c *gin.Context) {
		handlers.ShowPage(c, svc, sessions, handlers.TabChat)
	})
	r.POST("/chat", func(c *gin.Context) {
		handlers.ChatForm(c, svc, sessions)
	})

	// api routes
	api := r.Group("/api")
	{
		api.GET("/view", func(c *gin.Context) {
			handlers.GetView(c, svc, sessions)
		})
		api.GET("/crime", func(c *gin.Context) {
			handlers.GetCrime(c, svc)
		})
		api.GET("/boundaries", func(c *gin.Context) {
			handlers.GetBoundaries(c, svc)
		})
		api.GET("/geocode", func(c *gin.Context) {
			handlers.Geocode(c, svc)
		})
		api.POST("/chat", func(c *gin.Context) {
			handlers.Chat(c, svc, sessions)
		})
	}

	return r, nil
}
