package models

import (
	"time"

	"gorm.io/gorm"
)

// Post 内容页/健康资讯表
type Post struct {
	ID          uint           `gorm:"primarykey" json:"id"`                    // 主键
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`        // 唯一标识
	Type        string         `gorm:"not null;index" json:"type"`              // 类型（page/article）
	Title       string         `gorm:"type:varchar(200);not null" json:"title"` // 标题
	Summary     string         `gorm:"type:varchar(500)" json:"summary"`        // 摘要
	Content     string         `gorm:"type:text" json:"content"`                // 内容（Markdown）
	Thumbnail   string         `json:"thumbnail"`                               // 缩略图
	IsPublished bool           `gorm:"default:false;index" json:"is_published"` // 是否发布
	PublishedAt *time.Time     `gorm:"index" json:"published_at"`               // 发布时间
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}
