package models

import (
	"time"

	"gorm.io/gorm"
)

// Prescription 处方单上传记录
type Prescription struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                        // 主键
	UserID     uint           `gorm:"index;not null" json:"user_id"`                               // 用户ID
	ImageURL   string         `gorm:"type:varchar(500);not null" json:"image_url"`                 // 处方图片地址
	Note       string         `gorm:"type:text" json:"note"`                                       // 用户备注
	Status     string         `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"` // 状态（pending/approved/rejected）
	ReviewNote string         `gorm:"type:text" json:"review_note"`                                // 审核备注
	ReviewedBy uint           `gorm:"index" json:"reviewed_by"`                                    // 审核管理员ID
	ReviewedAt *time.Time     `json:"reviewed_at"`                                                 // 审核时间
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                                  // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间
}

// TableName 指定表名
func (Prescription) TableName() string {
	return "prescriptions"
}
