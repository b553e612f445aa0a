package db

import "gorm.io/gorm"

// Link 友情链接，Weight 越大越靠前。
type Link struct {
	gorm.Model
	Title   string `gorm:"size:50;not null"`
	Href    string `gorm:"size:255;not null"`
	Weight  int    `gorm:"not null"`
	Status  Status `gorm:"index;not null"`
	OwnerID uint   `gorm:"index"`
}
