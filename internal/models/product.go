package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 药品/商品表
// 约束：CampaignPrice 非空时 CampaignStartsAt/CampaignEndsAt 必须同时非空，
// 过期后由折扣引擎的清理逻辑统一恢复为空。
type Product struct {
	ID                   uint           `gorm:"primarykey" json:"id"`                                      // 主键
	CategoryID           uint           `gorm:"not null;index" json:"category_id"`                         // 分类ID
	BrandName            string         `gorm:"type:varchar(120);index" json:"brand_name"`                 // 品牌名称
	Slug                 string         `gorm:"uniqueIndex;not null" json:"slug"`                          // 唯一标识
	Name                 string         `gorm:"type:varchar(200);not null" json:"name"`                    // 商品名称
	Description          string         `gorm:"type:text" json:"description"`                              // 商品描述
	Images               StringArray    `gorm:"type:json" json:"images"`                                   // 图片数组
	SellingPrice         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"selling_price"` // 售价（基准价）
	MRP                  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"mrp"`          // 市场零售价（展示上限）
	CampaignPrice        *Money         `gorm:"type:decimal(20,2)" json:"campaign_price"`                  // 活动价（为空表示无活动）
	CampaignStartsAt     *time.Time     `gorm:"index" json:"campaign_starts_at"`                           // 活动开始时间
	CampaignEndsAt       *time.Time     `gorm:"index" json:"campaign_ends_at"`                             // 活动结束时间
	RequiresPrescription bool           `gorm:"not null;default:false" json:"requires_prescription"`       // 是否处方药
	Stock                int            `gorm:"not null;default:0" json:"stock"`                           // 库存数量
	IsActive             bool           `gorm:"not null;index" json:"is_active"`                       // 是否上架
	SortOrder            int            `gorm:"default:0;index" json:"sort_order"`                         // 排序权重
	CreatedAt            time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt            time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	// 关联
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// EffectivePrice 返回指定时间点的生效价格（活动窗口内取活动价）
func (p *Product) EffectivePrice(now time.Time) Money {
	if p.CampaignPrice == nil || p.CampaignStartsAt == nil || p.CampaignEndsAt == nil {
		return p.SellingPrice
	}
	if now.Before(*p.CampaignStartsAt) || now.After(*p.CampaignEndsAt) {
		return p.SellingPrice
	}
	return *p.CampaignPrice
}
