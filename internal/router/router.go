package router

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/multiblog/internal/cache"
	"github.com/multiblog/internal/handler"
	"github.com/multiblog/internal/metrics"
	"github.com/multiblog/internal/middleware"
	"github.com/multiblog/internal/visitor"
	"github.com/multiblog/web"
	"gorm.io/gorm"
)

// Options carries what the router wires into handlers.
type Options struct {
	DB                   *gorm.DB
	Store                cache.Store
	Metrics              *metrics.Metrics
	SessionSecret        string
	SiteName             string
	CommentRatePerMinute int
	// Now overrides the clock used for UV days; nil means time.Now.
	Now func() time.Time
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(opts Options) (*gin.Engine, error) {
	if opts.DB == nil {
		return nil, errors.New("router: database is required")
	}
	if opts.Store == nil {
		return nil, errors.New("router: cache store is required")
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(opts.Metrics))
	r.Use(visitor.Middleware())

	// 配置会话中间件
	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/admin",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("multiblog_session", store))

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	api := handler.NewAPI(opts.DB, opts.Store, opts.Metrics, opts.SiteName).WithClock(opts.Now)

	r.GET("/healthz", api.Healthz)
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	// 前台路由
	r.GET("/", api.ShowIndex)
	r.GET("/category/:category_id/", api.ShowCategory)
	r.GET("/tag/:tag_id/", api.ShowTag)
	r.GET("/post/:post_id/", api.ShowPost)
	r.GET("/search/", api.ShowSearch)
	r.GET("/author/:owner_id/", api.ShowAuthor)
	r.GET("/links/", api.ShowLinks)
	r.POST("/comment/", middleware.NewRateLimiter(opts.CommentRatePerMinute).Handler(), api.CreateComment)
	r.NoRoute(api.NotFound)

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.GET("/login", api.ShowLoginPage)
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)

		auth := admin.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/dashboard", api.ShowDashboard)
		}

		apiGroup := admin.Group("/api")
		apiGroup.Use(handler.APIAuthRequired())
		{
			apiGroup.GET("/posts", api.GetPosts)
			apiGroup.GET("/posts/:id", api.GetPost)
			apiGroup.POST("/posts", api.CreatePost)
			apiGroup.PUT("/posts/:id", api.UpdatePost)
			apiGroup.PUT("/posts/:id/status", api.UpdatePostStatus)
			apiGroup.DELETE("/posts/:id", api.DeletePost)

			apiGroup.GET("/categories", api.GetCategories)
			apiGroup.POST("/categories", api.CreateCategory)
			apiGroup.PUT("/categories/:id", api.UpdateCategory)

			apiGroup.GET("/tags", api.GetTags)
			apiGroup.POST("/tags", api.CreateTag)
			apiGroup.PUT("/tags/:id", api.UpdateTag)

			apiGroup.GET("/comments", api.GetComments)
			apiGroup.PUT("/comments/:id/status", api.UpdateCommentStatus)

			apiGroup.POST("/links", api.CreateLink)
			apiGroup.PUT("/links/:id/visibility", api.UpdateLinkVisibility)

			apiGroup.POST("/sidebars", api.CreateSidebar)
			apiGroup.PUT("/sidebars/:id/visibility", api.UpdateSidebarVisibility)
		}
	}

	return r, nil
}
