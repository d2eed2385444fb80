package app

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/HiroyasuHigashida/sns-backend/internal/config"
)

// App owns the configured router. All state lives in process memory, so
// there is nothing external to connect to or close.
type App struct {
	cfg    config.Config
	router *gin.Engine
}

func New(cfg config.Config) (*App, error) {
	a := &App{cfg: cfg}

	a.router = newRouter()
	if err := Setup(a.router, cfg); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func newRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	return r
}
