package db

import "gorm.io/gorm"

// Category 定义了分类模型，IsNav 决定是否出现在导航栏。
type Category struct {
	gorm.Model
	Name    string `gorm:"size:40;not null"`
	OwnerID uint   `gorm:"index"`
	IsNav   bool
	Status  Status `gorm:"index;not null"`
}
