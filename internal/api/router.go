package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/EgehanKilicarslan/notekeeper/internal/handler"
	"github.com/EgehanKilicarslan/notekeeper/internal/middleware"
)

func SetupRouter(
	authHandler *handler.AuthHandler,
	noteHandler *handler.NoteHandler,
	authMiddleware *middleware.AuthMiddleware,
	htmlRender render.HTMLRender,
	logger *slog.Logger,
) *gin.Engine {
	r := gin.New()
	r.SetTrustedProxies(nil)
	r.HTMLRender = htmlRender

	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		gin.Recovery(),
		authMiddleware.LoadSession(),
	)

	// Public routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.GET("/signup", authHandler.SignUpPage)
	r.POST("/signup", authHandler.SignUp)

	// Anonymous callers get the same empty answer as everyone else
	r.POST("/delete-note", noteHandler.DeleteNote)

	// Protected routes
	protected := r.Group("/")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/logout", authHandler.Logout)
		protected.GET("/", noteHandler.Home)
		protected.POST("/", noteHandler.CreateNote)
	}

	return r
}
