package main

import (
	"log"
	"net/http"
	"os"

	"content-cms/pkg/config"
	"content-cms/pkg/handlers"
	"content-cms/pkg/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize config
	config.Init()

	if config.WatchContent {
		go func() {
			if err := services.WatchContent(); err != nil {
				log.Printf("content watcher stopped: %v", err)
			}
		}()
	}

	r := gin.Default()

	// Session Setup
	store := cookie.NewStore([]byte(os.Getenv("SESSION_SECRET")))
	r.Use(sessions.Sessions(config.SessionName, store))

	// Static Files & Templates
	r.LoadHTMLGlob("templates/*")
	r.Static(config.PreviewURL, config.PublicPath)
	r.Static("/static", "./static") // Serve static assets (css/js)

	// --- Auth Routes ---
	r.GET("/login", handlers.LoginPage)
	r.GET("/login/github", handlers.GithubLogin)
	r.GET("/auth/callback", handlers.AuthCallback)
	r.GET("/logout", handlers.Logout)

	// --- Main App (Authorized) ---
	authorized := r.Group("/")
	authorized.Use(handlers.AuthRequired)
	{
		authorized.GET("/", func(c *gin.Context) { c.HTML(http.StatusOK, "index.html", nil) })

		api := authorized.Group("/api")
		{
			api.POST("/build", handlers.HandleBuild)
			api.GET("/posts", handlers.ListPosts)
			api.GET("/tags", handlers.ListTags)
			api.GET("/post", handlers.GetPost)
			api.POST("/post", handlers.SavePost)
			api.POST("/create", handlers.CreatePost)
			api.POST("/delete", handlers.DeletePost)
			api.GET("/lint", handlers.LintPosts)
			api.POST("/preview", handlers.PreviewPost)
			api.POST("/diff", handlers.GetDiff)
			api.GET("/config", handlers.GetConfig)
			api.POST("/sync", handlers.HandleSync)
			api.POST("/publish", handlers.HandlePublish)

			api.GET("/media", handlers.ListMedia)
			api.POST("/media", handlers.UploadMedia)
			api.POST("/media/delete", handlers.DeleteMedia)
			api.GET("/media/raw", handlers.ServeMediaRaw)
		}
	}

	r.Run(":8080")
}
