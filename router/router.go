package router

import (
	"nutricoach/config"
	"nutricoach/controllers"
	dbpkg "nutricoach/db"
	"nutricoach/logger"
	"nutricoach/middleware"
	"nutricoach/session"
	"nutricoach/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are built once in main and handed to the router.
type Dependencies struct {
	DB        *gorm.DB
	Completer tools.Completer
	Sessions  *session.Manager
	Log       *logger.Logger
}

// Initialize wires all routes and middlewares: public routes + session-authenticated routes.
func Initialize(r *gin.Engine, cfg config.Configuration, deps Dependencies) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	r.Use(gin.Recovery())
	r.Use(Logger(log))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(dbpkg.SetDBtoContext(deps.DB))
	r.Use(tools.SetCompleterToContext(deps.Completer))
	r.Use(session.SetManagerToContext(deps.Sessions))

	// Public (no auth)
	r.GET("/health", controllers.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/login", controllers.Login)

	// Authenticated routes (session cookie required)
	auth := r.Group("")
	auth.Use(controllers.AuthRequired())

	auth.POST("/logout", controllers.Logout)
	auth.GET("/me", controllers.Me)

	auth.GET("/preferences", controllers.GetPreferences)
	auth.POST("/preferences", controllers.SavePreferences)

	auth.GET("/conversations", controllers.GetConversations)
	auth.POST("/conversations", controllers.CreateConversation)
	auth.DELETE("/conversations/:id", controllers.DeleteConversation)
	auth.GET("/conversations/:id/messages", controllers.GetConversationMessages)
	auth.POST("/conversations/:id/messages", controllers.PostConversationMessage)

	auth.POST("/chat", controllers.Chat)
	auth.POST("/plan", controllers.GenerateMealPlan)
	auth.POST("/analyze_meal", controllers.AnalyzeMeal)
	auth.POST("/estimate_macros", controllers.EstimateMacros)
	auth.POST("/suggest_swaps", controllers.SuggestSwaps)

	log.Info("routes initialized")
}
