package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/multiblog/internal/service"
)

type tagRequest struct {
	Name   string `json:"name" binding:"required"`
	Status string `json:"status"`
}

// GetTags 获取标签列表
func (a *API) GetTags(c *gin.Context) {
	tags, err := a.tags.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取标签列表失败")
		return
	}

	usage, err := a.tags.VisibleUsage()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取标签列表失败")
		return
	}
	counts := make(map[uint]int64, len(usage))
	for _, u := range usage {
		counts[u.ID] = u.Count
	}

	response := make([]gin.H, 0, len(tags))
	for _, tag := range tags {
		response = append(response, gin.H{
			"id":        tag.ID,
			"name":      tag.Name,
			"status":    tag.Status.String(),
			"postCount": counts[tag.ID],
		})
	}

	c.JSON(http.StatusOK, gin.H{"tags": response})
}

// CreateTag 创建新标签
func (a *API) CreateTag(c *gin.Context) {
	var req tagRequest
	if !bindJSON(c, &req, "标签名称不能为空") {
		return
	}

	tag, err := a.tags.Create(req.Name, currentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTagExists):
			respondError(c, http.StatusBadRequest, "标签已存在")
		default:
			respondServiceError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "标签创建成功", "tag": gin.H{"id": tag.ID, "name": tag.Name, "status": tag.Status.String()}})
}

// UpdateTag 更新标签
func (a *API) UpdateTag(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的标签ID")
		return
	}

	var req tagRequest
	if !bindJSON(c, &req, "标签名称不能为空") {
		return
	}
	status, err := parseStatusLabel(req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	tag, err := a.tags.Update(id, req.Name, status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTagExists):
			respondError(c, http.StatusBadRequest, "标签名已存在")
		case errors.Is(err, service.ErrTagNotFound):
			respondError(c, http.StatusNotFound, "标签不存在")
		default:
			respondServiceError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "标签更新成功", "tag": gin.H{"id": tag.ID, "name": tag.Name, "status": tag.Status.String()}})
}
