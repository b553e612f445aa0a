package db

import "gorm.io/gorm"

// Tag 定义了标签模型
type Tag struct {
	gorm.Model
	Name    string `gorm:"size:10;unique;not null"`
	OwnerID uint   `gorm:"index"`
	Status  Status `gorm:"index;not null"`
	Posts   []Post `gorm:"many2many:post_tags;"`
}
