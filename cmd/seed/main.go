package main

import (
	"github.com/joho/godotenv"
	"github.com/multiblog/internal/config"
	"github.com/multiblog/internal/db"
	"github.com/multiblog/internal/logging"
	"github.com/sirupsen/logrus"
)

// 测试数据生成器
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	logging.Init(cfg.Log)

	if err := db.Init(db.Options{Driver: cfg.DatabaseDriver, Path: cfg.DatabasePath, DSN: cfg.DatabaseDSN}); err != nil {
		logrus.WithError(err).Fatal("数据库初始化失败")
	}

	username, password := cfg.SuperRootUserName, cfg.SuperRootPassword
	if username == "" || password == "" {
		username, password = "admin", "admin123"
	}

	summary, err := Seed(db.DB, username, password)
	if err != nil {
		logrus.WithError(err).Fatal("生成测试数据失败")
	}

	logrus.WithFields(logrus.Fields{
		"user":       username,
		"categories": summary.Categories,
		"tags":       summary.Tags,
		"posts":      summary.Posts,
		"links":      summary.Links,
		"sidebars":   summary.Sidebars,
	}).Info("测试数据生成完成")
}
