package db

import "gorm.io/gorm"

// SidebarType 决定侧边栏块的数据来源。
type SidebarType int

const (
	SidebarHTML     SidebarType = 1
	SidebarLatest   SidebarType = 2
	SidebarHottest  SidebarType = 3
	SidebarComments SidebarType = 4
)

const (
	SidebarHidden Status = 0
	SidebarShown  Status = 1
)

// Sidebar 侧边栏配置
type Sidebar struct {
	gorm.Model
	Title       string      `gorm:"size:50;not null"`
	DisplayType SidebarType `gorm:"not null"`
	Content     string      `gorm:"type:text"`
	Status      Status      `gorm:"index;not null"`
	OwnerID     uint        `gorm:"index"`
}
