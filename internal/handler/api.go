package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/multiblog/internal/cache"
	"github.com/multiblog/internal/metrics"
	"github.com/multiblog/internal/service"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	store      cache.Store
	metrics    *metrics.Metrics
	siteName   string
	now        func() time.Time
	posts      *service.PostService
	categories *service.CategoryService
	tags       *service.TagService
	comments   *service.CommentService
	links      *service.LinkService
	sidebars   *service.SidebarService
	engagement *service.EngagementService
}

// NewAPI constructs a handler set with shared services. m may be nil.
func NewAPI(gdb *gorm.DB, store cache.Store, m *metrics.Metrics, siteName string) *API {
	posts := service.NewPostService(gdb)
	comments := service.NewCommentService(gdb)

	return &API{
		db:         gdb,
		store:      store,
		metrics:    m,
		siteName:   siteName,
		now:        time.Now,
		posts:      posts,
		categories: service.NewCategoryService(gdb),
		tags:       service.NewTagService(gdb),
		comments:   comments,
		links:      service.NewLinkService(gdb),
		sidebars:   service.NewSidebarService(gdb, posts, comments),
		engagement: service.NewEngagementService(gdb, store, m),
	}
}

// WithClock replaces time.Now for the day used in UV accounting.
func (a *API) WithClock(now func() time.Time) *API {
	if now != nil {
		a.now = now
	}
	return a
}

// commonContext loads the data every public page shares. Failures are logged
// and leave the affected group empty.
func (a *API) commonContext(c *gin.Context) gin.H {
	nav, err := a.categories.Navs()
	if err != nil {
		logrus.WithError(err).Warn("load navigation failed")
		_ = c.Error(err)
	}

	sidebars, err := a.sidebars.Blocks()
	if err != nil {
		logrus.WithError(err).Warn("load sidebars failed")
		_ = c.Error(err)
		sidebars = nil
	}

	return gin.H{
		"site":       a.siteName,
		"navs":       nav.Navs,
		"categories": nav.Categories,
		"sidebars":   sidebars,
		"year":       a.now().Year(),
		"keyword":    "",
	}
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := a.commonContext(c)
	for key, value := range data {
		payload[key] = value
	}
	c.HTML(status, template, payload)
}
