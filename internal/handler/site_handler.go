package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/multiblog/internal/db"
	"github.com/multiblog/internal/service"
)

type linkRequest struct {
	Title  string `json:"title" binding:"required"`
	Href   string `json:"href" binding:"required,url"`
	Weight int    `json:"weight"`
}

type sidebarRequest struct {
	Title       string `json:"title" binding:"required"`
	DisplayType int    `json:"displayType" binding:"required"`
	Content     string `json:"content"`
}

type visibilityRequest struct {
	Shown bool `json:"shown"`
}

// CreateLink 新增友情链接
func (a *API) CreateLink(c *gin.Context) {
	var req linkRequest
	if !bindJSON(c, &req, "链接标题与地址不能为空") {
		return
	}

	link, err := a.links.Create(service.LinkInput{
		Title:   req.Title,
		Href:    req.Href,
		Weight:  req.Weight,
		OwnerID: currentUserID(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": link.ID, "title": link.Title, "href": link.Href, "weight": link.Weight})
}

// UpdateLinkVisibility 隐藏或恢复友情链接
func (a *API) UpdateLinkVisibility(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req visibilityRequest
	if !bindJSON(c, &req, "invalid payload") {
		return
	}
	status := db.StatusDeleted
	if req.Shown {
		status = db.StatusNormal
	}
	if err := a.links.SetStatus(id, status); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "shown": req.Shown})
}

// CreateSidebar 新增侧边栏
func (a *API) CreateSidebar(c *gin.Context) {
	var req sidebarRequest
	if !bindJSON(c, &req, "侧边栏标题与类型不能为空") {
		return
	}

	sidebar, err := a.sidebars.Create(service.SidebarInput{
		Title:       req.Title,
		DisplayType: db.SidebarType(req.DisplayType),
		Content:     req.Content,
		OwnerID:     currentUserID(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": sidebar.ID, "title": sidebar.Title, "displayType": int(sidebar.DisplayType)})
}

// UpdateSidebarVisibility 显示或隐藏侧边栏
func (a *API) UpdateSidebarVisibility(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req visibilityRequest
	if !bindJSON(c, &req, "invalid payload") {
		return
	}
	if err := a.sidebars.SetShown(id, req.Shown); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "shown": req.Shown})
}

// Healthz reports whether the database and the engagement cache respond.
func (a *API) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{"database": "ok", "cache": "ok"}
	healthy := true

	if sqlDB, err := a.db.DB(); err != nil {
		checks["database"] = err.Error()
		healthy = false
	} else if err := sqlDB.PingContext(ctx); err != nil {
		checks["database"] = err.Error()
		healthy = false
	}

	if err := a.store.Ping(ctx); err != nil {
		checks["cache"] = err.Error()
		healthy = false
	}

	status := http.StatusOK
	state := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(status, gin.H{"status": state, "checks": checks})
}
