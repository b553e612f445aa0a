package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/multiblog/internal/cache"
	"github.com/multiblog/internal/db"
	"github.com/multiblog/internal/metrics"
	"github.com/multiblog/internal/visitor"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubHTMLRender struct {
	name string
	data gin.H
}

type stubHTMLInstance struct{}

func (r *stubHTMLRender) Instance(name string, data interface{}) render.Render {
	r.name = name
	r.data, _ = data.(gin.H)
	return stubHTMLInstance{}
}

func (stubHTMLInstance) Render(http.ResponseWriter) error {
	return nil
}

func (stubHTMLInstance) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(db.SQLite(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

// newTestRouter wires api into a bare engine with sessions, visitor ids and a
// render stub that captures template data.
func newTestRouter(t *testing.T) (*API, *gin.Engine, *stubHTMLRender, *metrics.Metrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := setupHandlerTestDB(t)
	store := cache.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	m := metrics.New()
	api := NewAPI(gdb, store, m, "Handler Blog")

	stub := &stubHTMLRender{}
	r := gin.New()
	r.HTMLRender = stub
	r.Use(visitor.Middleware())
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	return api, r, stub, m
}
