package constants

// 折扣规则类型常量
const (
	RuleTypeCategory   = "category"
	RuleTypeBrand      = "brand"
	RuleTypeCartAmount = "cart_amount"
	RuleTypeUserGroup  = "user_group"
)

// 折扣类型常量（规则与优惠券共用）
const (
	DiscountTypeFixed   = "fixed"
	DiscountTypePercent = "percent"
)

// 处方单状态常量
const (
	PrescriptionStatusPending  = "pending"
	PrescriptionStatusApproved = "approved"
	PrescriptionStatusRejected = "rejected"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 内容页类型常量
const (
	PostTypePage    = "page"
	PostTypeArticle = "article"
)

// Banner 投放位置常量
const (
	BannerPositionHome     = "home"
	BannerPositionCategory = "category"
)

// 队列名称常量
const (
	QueueDefault = "default"
)

// 异步任务类型常量
const (
	TaskDiscountEngineRun = "engine:discount_run"
)
