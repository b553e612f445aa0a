package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/multiblog/internal/db"
	"github.com/sirupsen/logrus"
)

const (
	sessionUserIDKey   = "user_id"
	sessionUsernameKey = "username"
)

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"title": "管理员登录",
		"site":  a.siteName,
	})
}

// Login 校验账号密码并写入会话
func (a *API) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := db.Authenticate(a.db, username, password)
	if err != nil {
		logrus.WithField("username", username).Info("admin login rejected")
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"title": "管理员登录",
			"site":  a.siteName,
			"error": "用户名或密码错误",
		})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserIDKey, user.ID)
	session.Set(sessionUsernameKey, user.Username)
	if err := session.Save(); err != nil {
		logrus.WithError(err).Error("save session failed")
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"title": "管理员登录",
			"site":  a.siteName,
			"error": "会话保存失败",
		})
		return
	}

	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// Logout 处理用户登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		logrus.WithError(err).Warn("clear session failed")
	}
	c.Redirect(http.StatusFound, "/admin/login")
}

// ShowDashboard 渲染后台主面板
func (a *API) ShowDashboard(c *gin.Context) {
	session := sessions.Default(c)

	totals, err := a.engagement.Totals(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
	}

	var tagCount, commentCount int64
	if err := a.db.Model(&db.Tag{}).Count(&tagCount).Error; err != nil {
		_ = c.Error(err)
	}
	if err := a.db.Model(&db.Comment{}).Count(&commentCount).Error; err != nil {
		_ = c.Error(err)
	}

	var topPosts []db.Post
	if hottest, err := a.posts.Hottest(1); err == nil {
		topPosts = hottest.Posts
	} else {
		_ = c.Error(err)
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"title":        "管理面板",
		"site":         a.siteName,
		"username":     session.Get(sessionUsernameKey),
		"postCount":    totals.Posts,
		"totalPV":      totals.PV,
		"totalUV":      totals.UV,
		"tagCount":     tagCount,
		"commentCount": commentCount,
		"topPosts":     topPosts,
	})
}

// AuthRequired 是一个简单的认证中间件
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(sessionUserIDKey) == nil {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// APIAuthRequired rejects unauthenticated admin API calls with 401.
func APIAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(sessionUserIDKey) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.Next()
	}
}

// currentUserID returns the id of the logged in admin.
func currentUserID(c *gin.Context) uint {
	if id, ok := sessions.Default(c).Get(sessionUserIDKey).(uint); ok {
		return id
	}
	return 0
}
