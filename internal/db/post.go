package db

import "gorm.io/gorm"

// Post 定义了文章模型
type Post struct {
	gorm.Model
	Title       string `gorm:"size:128;not null"`
	Summary     string `gorm:"size:1024"`
	Content     string `gorm:"type:text"`
	ContentHTML string `gorm:"type:text"`
	Status      Status `gorm:"index;not null"`
	CategoryID  uint   `gorm:"index"`
	Category    Category
	Tags        []Tag `gorm:"many2many:post_tags;"`
	OwnerID     uint  `gorm:"index"`
	Owner       User
	PV          uint `gorm:"column:pv;not null"`
	UV          uint `gorm:"column:uv;not null"`
}

// BeforeCreate 保证计数器从 1 开始。
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.PV == 0 {
		p.PV = 1
	}
	if p.UV == 0 {
		p.UV = 1
	}
	return nil
}

// TagNames joins tag names for list rendering.
func (p Post) TagNames() []string {
	names := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		names = append(names, tag.Name)
	}
	return names
}
