package routes

import (
	"time"

	"devconnect/auth"
	"devconnect/handlers"
	"devconnect/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(creds *auth.Service) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	guard := middleware.AuthRequired(creds)
	credLimiter := middleware.RateLimit(20, time.Minute)

	users := router.Group("/api/users")
	users.GET("/test", func(c *gin.Context) {
		c.JSON(200, gin.H{"msg": "Users works"})
	})
	users.POST("/register", credLimiter, handlers.Register)
	users.POST("/login", credLimiter, handlers.Login)
	users.GET("/current", guard, handlers.CurrentUser)

	profile := router.Group("/api/profile")
	profile.GET("/test", func(c *gin.Context) {
		c.JSON(200, gin.H{"msg": "Profile works"})
	})
	profile.GET("", guard, handlers.GetCurrentProfile)
	profile.GET("/handle/:handle", handlers.GetProfileByHandle)
	profile.GET("/user/:user_id", handlers.GetProfileByUser)
	profile.GET("/all", handlers.GetAllProfiles)
	profile.POST("", guard, handlers.UpsertProfile)
	profile.POST("/experience", guard, handlers.AddExperience)
	profile.POST("/education", guard, handlers.AddEducation)
	profile.DELETE("/experience/:exp_id", guard, handlers.DeleteExperience)
	profile.DELETE("/education/:edu_id", guard, handlers.DeleteEducation)
	profile.DELETE("", guard, handlers.DeleteAccount)

	posts := router.Group("/api/posts")
	posts.GET("/test", func(c *gin.Context) {
		c.JSON(200, gin.H{"msg": "Posts works"})
	})
	posts.GET("", handlers.GetPosts)
	posts.GET("/:id", handlers.GetPost)
	posts.POST("", guard, handlers.CreatePost)
	posts.DELETE("/:id", guard, handlers.DeletePost)
	posts.POST("/like/:id", guard, handlers.LikePost)
	posts.POST("/unlike/:id", guard, handlers.UnlikePost)
	posts.POST("/comment/:id", guard, handlers.AddComment)
	posts.DELETE("/comment/:id/:comment_id", guard, handlers.DeleteComment)

	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"error": "Endpoint not found",
				"path":  c.Request.URL.Path,
			})
		}
	})

	return router
}
