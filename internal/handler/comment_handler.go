package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/multiblog/internal/service"
	"github.com/sirupsen/logrus"
)

// CreateComment handles the public comment form.
func (a *API) CreateComment(c *gin.Context) {
	input := service.CommentInput{
		Target:   c.PostForm("target"),
		Nickname: c.PostForm("nickname"),
		Email:    c.PostForm("email"),
		Website:  c.PostForm("website"),
		Content:  c.PostForm("content"),
	}

	comment, err := a.comments.Create(input)
	if err != nil {
		status := http.StatusInternalServerError
		message := "评论保存失败，请稍后再试"
		if errors.Is(err, service.ErrInvalidArgument) {
			status = http.StatusBadRequest
			message = err.Error()
		} else {
			logrus.WithError(err).Error("create comment failed")
		}
		a.renderHTML(c, status, "comment_result.html", gin.H{
			"title":  "评论失败",
			"error":  message,
			"target": input.Target,
		})
		return
	}

	if a.metrics != nil {
		a.metrics.CommentsCreated.Inc()
	}
	c.Redirect(http.StatusFound, comment.Target)
}

type commentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetComments lists comments of every status for moderation.
func (a *API) GetComments(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	comments, err := a.comments.List(limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// UpdateCommentStatus moderates a single comment.
func (a *API) UpdateCommentStatus(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req commentStatusRequest
	if !bindJSON(c, &req, "invalid payload") {
		return
	}
	status, err := parseStatusLabel(req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := a.comments.SetStatus(id, *status); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": status.String()})
}
