package web

import (
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the dashboard routes onto a gin engine
func NewRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.SetHTMLTemplate(loadTemplates())

	r.GET("/", h.ListPage)
	r.GET("/coin/:id", h.DetailPage)
	r.GET("/icons/:id", h.Icon)
	r.GET("/ws", h.Live)

	static, _ := fs.Sub(assets, "templates")
	r.StaticFileFS("/static/style.css", "style.css", http.FS(static))

	api := r.Group("/api")
	{
		api.GET("/coins", h.ListJSON)
		api.GET("/coins/:id", h.DetailJSON)
		api.POST("/refresh", h.Refresh)
	}

	r.GET("/healthz", h.Health)
	r.GET("/metrics", h.Metrics)

	return r
}

// requestLogger logs each request through slog
func requestLogger() gin.HandlerFunc {
	logger := slog.Default().With("module", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("Request served",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}
