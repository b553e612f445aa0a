package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/multiblog/internal/db"
	"github.com/multiblog/internal/service"
	"github.com/sirupsen/logrus"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	return service.ParseID(c.Param(key))
}

// statusForError maps service error kinds to HTTP statuses. Public pages answer
// invalid arguments with 404 since a malformed page or id names no resource.
func statusForError(err error, public bool) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidArgument):
		if public {
			return http.StatusNotFound
		}
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes err as JSON for the admin API.
func respondServiceError(c *gin.Context, err error) {
	status := statusForError(err, false)
	if status == http.StatusInternalServerError {
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("admin request failed")
		respondError(c, status, "internal error")
		return
	}
	respondError(c, status, err.Error())
}

// renderError renders the public error page for err.
func (a *API) renderError(c *gin.Context, err error) {
	status := statusForError(err, true)
	message := "页面不存在"
	if status == http.StatusInternalServerError {
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("render page failed")
		message = "服务器开小差了"
	}
	a.renderHTML(c, status, "error.html", gin.H{
		"title":   message,
		"status":  status,
		"message": message,
	})
}

// parseStatusLabel accepts an optional admin status label.
func parseStatusLabel(label string) (*db.Status, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, nil
	}
	status, ok := db.ParseStatus(label)
	if !ok {
		return nil, service.ErrInvalidStatus
	}
	return &status, nil
}
