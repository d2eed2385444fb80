package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"

	"github.com/HiroyasuHigashida/sns-backend/internal/auth"
	"github.com/HiroyasuHigashida/sns-backend/internal/config"
	"github.com/HiroyasuHigashida/sns-backend/internal/handlers"
	"github.com/HiroyasuHigashida/sns-backend/internal/repo"
	"github.com/HiroyasuHigashida/sns-backend/internal/service"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config) error {
	r.GET("/", rootHandler(cfg))
	r.GET("/healthz", healthHandler())
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	db := repo.NewDB()
	userRepo := repo.NewMemUserRepo(db)
	postRepo := repo.NewMemPostRepo(db)
	graphRepo := repo.NewMemGraphRepo(db)

	tokens, err := auth.NewTokenService(cfg.Auth.Secret, cfg.Auth.TTL.Duration())
	if err != nil {
		return err
	}

	userSvc := service.NewUserService(userRepo, graphRepo)
	postSvc := service.NewPostService(postRepo, userRepo, graphRepo)
	socialSvc := service.NewSocialService(userRepo, graphRepo)

	authHandler := handlers.NewAuthHandler(userSvc, tokens)
	userHandler := handlers.NewUserHandler(userSvc, socialSvc)
	postHandler := handlers.NewPostHandler(postSvc, socialSvc)

	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	protected := r.Group("", auth.RequireAuth(tokens, userRepo))
	protected.GET("/users/:username", userHandler.Get)    // also serves /users/me
	protected.PUT("/users/:username", userHandler.Update) // only accepts "me"
	protected.POST("/users/:username/follow", userHandler.Follow)
	protected.DELETE("/users/:username/follow", userHandler.Unfollow)
	protected.GET("/users/:username/following", userHandler.IsFollowing)
	protected.POST("/posts", postHandler.Create)
	protected.GET("/posts/:id", postHandler.Get) // also serves /posts/timeline
	protected.DELETE("/posts/:id", postHandler.Delete)
	protected.POST("/posts/:id/like", postHandler.Like)
	protected.DELETE("/posts/:id/like", postHandler.Unlike)
	protected.GET("/search/users", userHandler.Search)
	protected.GET("/search/posts", postHandler.Search)

	return nil
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "SNS API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/healthz",
		})
	}
}

func healthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}
