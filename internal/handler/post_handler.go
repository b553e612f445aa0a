package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/multiblog/internal/db"
	"github.com/multiblog/internal/service"
)

type postRequest struct {
	Title      string `json:"title" binding:"required"`
	Summary    string `json:"summary"`
	Content    string `json:"content"`
	Status     string `json:"status"`
	CategoryID uint   `json:"categoryId" binding:"required"`
	TagIDs     []uint `json:"tagIds"`
}

type postStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func postView(post *db.Post) gin.H {
	tagIDs := make([]uint, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tagIDs = append(tagIDs, tag.ID)
	}
	return gin.H{
		"id":          post.ID,
		"title":       post.Title,
		"summary":     post.Summary,
		"content":     post.Content,
		"contentHtml": post.ContentHTML,
		"status":      post.Status.String(),
		"categoryId":  post.CategoryID,
		"category":    post.Category.Name,
		"tagIds":      tagIDs,
		"tags":        post.TagNames(),
		"ownerId":     post.OwnerID,
		"owner":       post.Owner.Username,
		"pv":          post.PV,
		"uv":          post.UV,
		"createdAt":   post.CreatedAt,
		"updatedAt":   post.UpdatedAt,
	}
}

func (r postRequest) input(c *gin.Context) (service.PostInput, error) {
	status, err := parseStatusLabel(r.Status)
	if err != nil {
		return service.PostInput{}, err
	}
	return service.PostInput{
		Title:      r.Title,
		Summary:    r.Summary,
		Content:    r.Content,
		Status:     status,
		CategoryID: r.CategoryID,
		TagIDs:     r.TagIDs,
		OwnerID:    currentUserID(c),
	}, nil
}

// GetPosts 获取后台文章列表
func (a *API) GetPosts(c *gin.Context) {
	status, err := parseStatusLabel(c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("perPage"))

	result, err := a.posts.List(service.PostFilter{
		Search:  c.Query("search"),
		Status:  status,
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	posts := make([]gin.H, 0, len(result.Posts))
	for i := range result.Posts {
		posts = append(posts, postView(&result.Posts[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"posts":      posts,
		"total":      result.Total,
		"page":       result.Page,
		"perPage":    result.PerPage,
		"totalPages": result.TotalPages,
	})
}

// GetPost 获取单篇文章
func (a *API) GetPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondServiceError(c, err)
		return
	}

	post, err := a.posts.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": postView(post)})
}

// CreatePost 创建文章，Markdown 在保存时转换
func (a *API) CreatePost(c *gin.Context) {
	var req postRequest
	if !bindJSON(c, &req, "标题与分类不能为空") {
		return
	}
	input, err := req.input(c)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	post, err := a.posts.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "文章创建成功", "post": postView(post)})
}

// UpdatePost 更新文章
func (a *API) UpdatePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req postRequest
	if !bindJSON(c, &req, "标题与分类不能为空") {
		return
	}
	input, err := req.input(c)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	post, err := a.posts.Update(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "文章更新成功", "post": postView(post)})
}

// UpdatePostStatus 仅修改文章状态
func (a *API) UpdatePostStatus(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req postStatusRequest
	if !bindJSON(c, &req, "状态不能为空") {
		return
	}
	status, err := parseStatusLabel(req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := a.posts.SetStatus(id, *status); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": status.String()})
}

// DeletePost 将文章标记为删除
func (a *API) DeletePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := a.posts.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "文章删除成功"})
}
