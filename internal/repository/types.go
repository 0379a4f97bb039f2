package repository

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	BrandName    string
	Search       string
	OnlyActive   bool
	WithCategory bool
}

// DiscountRuleListFilter 查询折扣规则列表的过滤条件
type DiscountRuleListFilter struct {
	Page     int
	PageSize int
	RuleType string
	IsActive *bool
	Search   string
}

// CouponListFilter 查询优惠码列表的过滤条件
type CouponListFilter struct {
	Page     int
	PageSize int
	Code     string
	IsActive *bool
}

// CouponUsageListFilter 查询优惠码使用记录列表的过滤条件
type CouponUsageListFilter struct {
	Page     int
	PageSize int
	CouponID uint
	UserID   uint
}

// BannerListFilter 查询 Banner 列表的过滤条件
type BannerListFilter struct {
	Page      int
	PageSize  int
	Position  string
	IsActive  *bool
	OnlyValid bool
}

// PostListFilter 查询内容页列表的过滤条件
type PostListFilter struct {
	Page          int
	PageSize      int
	Type          string
	Search        string
	OnlyPublished bool
}

// PrescriptionListFilter 查询处方单列表的过滤条件
type PrescriptionListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	Status   string
}
