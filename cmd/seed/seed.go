package main

import (
	"errors"
	"fmt"

	"github.com/multiblog/internal/db"
	"github.com/multiblog/internal/service"
	"gorm.io/gorm"
)

// ErrAlreadySeeded is returned when posts already exist.
var ErrAlreadySeeded = errors.New("database already contains posts")

// Summary counts what Seed created.
type Summary struct {
	Categories int
	Tags       int
	Posts      int
	Links      int
	Sidebars   int
}

type seedPost struct {
	title    string
	summary  string
	content  string
	category string
	tags     []string
	status   db.Status
}

var seedCategories = []struct {
	name  string
	isNav bool
}{
	{"Go", true},
	{"数据库", true},
	{"随笔", false},
	{"工具", false},
}

var seedTags = []string{"并发", "gin", "gorm", "redis", "缓存", "测试"}

var seedPosts = []seedPost{
	{
		title:    "使用 Go 构建多人博客",
		summary:  "从路由、存储到模板渲染，梳理一个多人博客的整体结构。",
		content:  "## 结构\n\n- gin 负责路由\n- gorm 负责存储\n- 模板渲染公共上下文\n\n阅读量按访客去重计数。",
		category: "Go",
		tags:     []string{"gin", "gorm"},
		status:   db.StatusNormal,
	},
	{
		title:    "用 Redis 做访问去重",
		summary:  "SETNX 加过期时间，让 PV 与 UV 的去重窗口天然失效。",
		content:  "PV 窗口 60 秒，UV 窗口一天。\n\n```\nSET pv:{visitor}:{path} 1 NX EX 60\n```",
		category: "数据库",
		tags:     []string{"redis", "缓存"},
		status:   db.StatusNormal,
	},
	{
		title:    "goroutine 与 channel 入门",
		summary:  "并发原语的基本用法与常见陷阱。",
		content:  "`go` 关键字启动 goroutine，channel 负责通信。",
		category: "Go",
		tags:     []string{"并发"},
		status:   db.StatusNormal,
	},
	{
		title:    "表驱动测试",
		summary:  "用 testify 编写清晰的表驱动测试。",
		content:  "| 输入 | 期望 |\n|---|---|\n| 1 | 2 |",
		category: "工具",
		tags:     []string{"测试"},
		status:   db.StatusNormal,
	},
	{
		title:    "周末随笔",
		summary:  "写给自己的一些碎碎念。",
		content:  "天气不错。",
		category: "随笔",
		status:   db.StatusNormal,
	},
	{
		title:    "还没写完的草稿",
		summary:  "草稿不会出现在前台。",
		content:  "TBD",
		category: "随笔",
		status:   db.StatusDraft,
	},
}

// Seed fills an empty database with demo content owned by an admin account.
func Seed(gdb *gorm.DB, username, password string) (Summary, error) {
	var summary Summary

	var postCount int64
	if err := gdb.Model(&db.Post{}).Count(&postCount).Error; err != nil {
		return summary, err
	}
	if postCount > 0 {
		return summary, ErrAlreadySeeded
	}

	if err := db.EnsureUser(gdb, username, password); err != nil {
		return summary, fmt.Errorf("ensure user: %w", err)
	}
	var owner db.User
	if err := gdb.Where("username = ?", username).First(&owner).Error; err != nil {
		return summary, fmt.Errorf("load user: %w", err)
	}

	categories := service.NewCategoryService(gdb)
	categoryIDs := make(map[string]uint, len(seedCategories))
	for _, item := range seedCategories {
		category, err := categories.Create(service.CategoryInput{Name: item.name, IsNav: item.isNav, OwnerID: owner.ID})
		if err != nil {
			return summary, fmt.Errorf("create category %s: %w", item.name, err)
		}
		categoryIDs[item.name] = category.ID
		summary.Categories++
	}

	tags := service.NewTagService(gdb)
	tagIDs := make(map[string]uint, len(seedTags))
	for _, name := range seedTags {
		tag, err := tags.Create(name, owner.ID)
		if err != nil {
			return summary, fmt.Errorf("create tag %s: %w", name, err)
		}
		tagIDs[name] = tag.ID
		summary.Tags++
	}

	posts := service.NewPostService(gdb)
	for _, item := range seedPosts {
		ids := make([]uint, 0, len(item.tags))
		for _, name := range item.tags {
			ids = append(ids, tagIDs[name])
		}
		status := item.status
		if _, err := posts.Create(service.PostInput{
			Title:      item.title,
			Summary:    item.summary,
			Content:    item.content,
			Status:     &status,
			CategoryID: categoryIDs[item.category],
			TagIDs:     ids,
			OwnerID:    owner.ID,
		}); err != nil {
			return summary, fmt.Errorf("create post %s: %w", item.title, err)
		}
		summary.Posts++
	}

	links := service.NewLinkService(gdb)
	for i, item := range []service.LinkInput{
		{Title: "Go 官网", Href: "https://go.dev", Weight: 10},
		{Title: "Gin", Href: "https://gin-gonic.com", Weight: 5},
	} {
		item.OwnerID = owner.ID
		if _, err := links.Create(item); err != nil {
			return summary, fmt.Errorf("create link %d: %w", i, err)
		}
		summary.Links++
	}

	sidebars := service.NewSidebarService(gdb, posts, service.NewCommentService(gdb))
	for _, item := range []service.SidebarInput{
		{Title: "关于", DisplayType: db.SidebarHTML, Content: "<p>一个多人博客示例。</p>"},
		{Title: "最新文章", DisplayType: db.SidebarLatest},
		{Title: "最热文章", DisplayType: db.SidebarHottest},
		{Title: "最近评论", DisplayType: db.SidebarComments},
	} {
		item.OwnerID = owner.ID
		if _, err := sidebars.Create(item); err != nil {
			return summary, fmt.Errorf("create sidebar %s: %w", item.Title, err)
		}
		summary.Sidebars++
	}

	return summary, nil
}
