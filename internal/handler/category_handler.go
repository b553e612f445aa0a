package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/multiblog/internal/db"
	"github.com/multiblog/internal/service"
)

type categoryRequest struct {
	Name   string `json:"name" binding:"required"`
	IsNav  bool   `json:"isNav"`
	Status string `json:"status"`
}

func categoryView(category *db.Category) gin.H {
	return gin.H{
		"id":     category.ID,
		"name":   category.Name,
		"isNav":  category.IsNav,
		"status": category.Status.String(),
	}
}

// GetCategories 获取全部分类
func (a *API) GetCategories(c *gin.Context) {
	categories, err := a.categories.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := make([]gin.H, 0, len(categories))
	for i := range categories {
		response = append(response, categoryView(&categories[i]))
	}
	c.JSON(http.StatusOK, gin.H{"categories": response})
}

// CreateCategory 创建分类
func (a *API) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if !bindJSON(c, &req, "分类名称不能为空") {
		return
	}
	status, err := parseStatusLabel(req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	category, err := a.categories.Create(service.CategoryInput{
		Name:    req.Name,
		IsNav:   req.IsNav,
		Status:  status,
		OwnerID: currentUserID(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "分类创建成功", "category": categoryView(category)})
}

// UpdateCategory 更新分类
func (a *API) UpdateCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req categoryRequest
	if !bindJSON(c, &req, "分类名称不能为空") {
		return
	}
	status, err := parseStatusLabel(req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	category, err := a.categories.Update(id, service.CategoryInput{Name: req.Name, IsNav: req.IsNav, Status: status})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "分类更新成功", "category": categoryView(category)})
}
