package db

import "gorm.io/gorm"

// Comment 是访客在任意页面路径下留下的评论，Content 保存渲染后的 HTML。
type Comment struct {
	gorm.Model
	Target   string `gorm:"size:255;index;not null"`
	Nickname string `gorm:"size:50;not null"`
	Email    string `gorm:"size:50;not null"`
	Website  string `gorm:"size:100"`
	Content  string `gorm:"type:text;not null"`
	Status   Status `gorm:"index;not null"`
}
