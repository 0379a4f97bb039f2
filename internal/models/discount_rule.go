package models

import (
	"time"

	"gorm.io/gorm"
)

// DiscountRule 折扣规则
// RuleType 为 category/brand 时由批量引擎写活动价；
// cart_amount/user_group 规则在结算时按购物车评估，引擎跳过。
type DiscountRule struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                // 主键
	Name         string         `gorm:"type:varchar(120);not null" json:"name"`              // 规则名称
	RuleType     string         `gorm:"type:varchar(20);not null;index" json:"rule_type"`    // 规则类型（category/brand/cart_amount/user_group）
	TargetValue  string         `gorm:"type:varchar(120);not null" json:"target_value"`      // 匹配目标（分类ID或品牌名）
	DiscountType string         `gorm:"type:varchar(20);not null" json:"discount_type"`      // 折扣类型（fixed/percent）
	Amount       Money          `gorm:"type:decimal(20,2);not null" json:"amount"`           // 折扣数值（固定金额或百分比）
	MinCartAmount Money         `gorm:"type:decimal(20,2);not null;default:0" json:"min_cart_amount"` // 购物车门槛（仅 cart_amount 规则使用）
	StartsAt     *time.Time     `gorm:"index" json:"starts_at"`                              // 生效时间
	EndsAt       *time.Time     `gorm:"index" json:"ends_at"`                                // 失效时间
	Priority     int            `gorm:"not null;default:0;index" json:"priority"`            // 优先级（冲突时高者胜出）
	IsActive     bool           `gorm:"not null" json:"is_active"`              // 是否启用
	Description  string         `gorm:"type:text" json:"description"`                        // 描述
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                             // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间
}

// TableName 指定表名
func (DiscountRule) TableName() string {
	return "discount_rules"
}
