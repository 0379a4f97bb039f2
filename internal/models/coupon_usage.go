package models

import (
	"time"

	"gorm.io/gorm"
)

// CouponUsage 优惠码使用记录（用于每人上限校验）
type CouponUsage struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                         // 主键
	CouponID       uint           `gorm:"index;not null" json:"coupon_id"`                              // 优惠码ID
	UserID         uint           `gorm:"index;not null" json:"user_id"`                                // 用户ID
	OrderNo        string         `gorm:"type:varchar(64);index" json:"order_no"`                       // 关联订单号
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 优惠金额
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间
}

// TableName 指定表名
func (CouponUsage) TableName() string {
	return "coupon_usages"
}
