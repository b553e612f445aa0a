package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/multiblog/internal/db"
	"github.com/multiblog/internal/service"
	"github.com/multiblog/internal/visitor"
	"github.com/sirupsen/logrus"
)

// ShowIndex renders the latest posts.
func (a *API) ShowIndex(c *gin.Context) {
	page, err := service.ParsePage(c.Query("page"))
	if err != nil {
		a.renderError(c, err)
		return
	}

	posts, err := a.posts.Latest(page)
	if err != nil {
		a.renderError(c, err)
		return
	}

	a.renderList(c, "首页", posts, gin.H{})
}

// ShowCategory renders the posts of one category.
func (a *API) ShowCategory(c *gin.Context) {
	categoryID, err := parseUintParam(c, "category_id")
	if err != nil {
		a.renderError(c, err)
		return
	}
	page, err := service.ParsePage(c.Query("page"))
	if err != nil {
		a.renderError(c, err)
		return
	}

	posts, category, err := a.posts.ByCategory(categoryID, page)
	if err != nil {
		a.renderError(c, err)
		return
	}

	a.renderList(c, "分类："+category.Name, posts, gin.H{"category": category})
}

// ShowTag renders the posts carrying one tag.
func (a *API) ShowTag(c *gin.Context) {
	tagID, err := parseUintParam(c, "tag_id")
	if err != nil {
		a.renderError(c, err)
		return
	}
	page, err := service.ParsePage(c.Query("page"))
	if err != nil {
		a.renderError(c, err)
		return
	}

	posts, tag, err := a.posts.ByTag(tagID, page)
	if err != nil {
		a.renderError(c, err)
		return
	}

	a.renderList(c, "标签："+tag.Name, posts, gin.H{"tag": tag})
}

// ShowAuthor renders the posts of one owner.
func (a *API) ShowAuthor(c *gin.Context) {
	ownerID, err := parseUintParam(c, "owner_id")
	if err != nil {
		a.renderError(c, err)
		return
	}
	page, err := service.ParsePage(c.Query("page"))
	if err != nil {
		a.renderError(c, err)
		return
	}

	posts, err := a.posts.ByAuthor(ownerID, page)
	if err != nil {
		a.renderError(c, err)
		return
	}

	title := "作者文章"
	if len(posts.Posts) > 0 {
		title = "作者：" + posts.Posts[0].Owner.Username
	}
	a.renderList(c, title, posts, gin.H{})
}

// ShowSearch renders posts whose title or summary contains keyword.
func (a *API) ShowSearch(c *gin.Context) {
	keyword := c.Query("keyword")
	page, err := service.ParsePage(c.Query("page"))
	if err != nil {
		a.renderError(c, err)
		return
	}

	posts, err := a.posts.Search(keyword, page)
	if err != nil {
		a.renderError(c, err)
		return
	}

	title := "搜索"
	pageQuery := "?page="
	if keyword != "" {
		title = "搜索：" + keyword
		pageQuery = "?keyword=" + url.QueryEscape(keyword) + "&page="
	}
	a.renderList(c, title, posts, gin.H{"keyword": keyword, "pageQuery": pageQuery})
}

func (a *API) renderList(c *gin.Context, title string, posts *service.PostPage, extra gin.H) {
	data := gin.H{
		"title":     title,
		"posts":     posts,
		"pageQuery": "?page=",
	}
	for key, value := range extra {
		data[key] = value
	}
	a.renderHTML(c, http.StatusOK, "list.html", data)
}

// ShowPost renders a visible post and counts the view.
func (a *API) ShowPost(c *gin.Context) {
	postID, err := parseUintParam(c, "post_id")
	if err != nil {
		a.renderError(c, err)
		return
	}

	post, err := a.posts.GetVisible(postID)
	if err != nil {
		a.renderError(c, err)
		return
	}

	a.countView(c, post)

	comments, err := a.comments.ListByTarget(c.Request.URL.Path)
	if err != nil {
		logrus.WithError(err).WithField("post_id", post.ID).Warn("load comments failed")
		comments = nil
	}

	a.renderHTML(c, http.StatusOK, "detail.html", gin.H{
		"title":    post.Title,
		"post":     post,
		"comments": comments,
		"target":   c.Request.URL.Path,
	})
}

// countView records the view. The page shows the counters as loaded, so the
// current view appears from the next request on. Failures never block rendering.
func (a *API) countView(c *gin.Context, post *db.Post) {
	_, err := a.engagement.RecordView(c.Request.Context(), visitor.FromContext(c), c.Request.URL.Path, post.ID, a.now())
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"post_id": post.ID,
			"path":    c.Request.URL.Path,
		}).Warn("record post view failed")
	}
}

// ShowLinks renders the friend links page.
func (a *API) ShowLinks(c *gin.Context) {
	links, err := a.links.ListVisible()
	if err != nil {
		a.renderError(c, err)
		return
	}

	comments, err := a.comments.ListByTarget(c.Request.URL.Path)
	if err != nil {
		logrus.WithError(err).Warn("load comments failed")
		comments = nil
	}

	a.renderHTML(c, http.StatusOK, "links.html", gin.H{
		"title":    "友情链接",
		"links":    links,
		"comments": comments,
		"target":   c.Request.URL.Path,
	})
}

// NotFound renders the error page for unknown routes.
func (a *API) NotFound(c *gin.Context) {
	a.renderError(c, service.ErrNotFound)
}
