package service

import "errors"

// 服务层哨兵错误，handler 通过 errors.Is 映射为响应码
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserDisabled       = errors.New("user disabled")

	ErrCouponNotFound     = errors.New("coupon not found")
	ErrCouponInactive     = errors.New("coupon inactive")
	ErrCouponNotStarted   = errors.New("coupon not started")
	ErrCouponExpired      = errors.New("coupon expired")
	ErrCouponMinCart      = errors.New("coupon minimum cart amount not met")
	ErrCouponUsageLimit   = errors.New("coupon usage limit reached")
	ErrCouponPerUserLimit = errors.New("coupon per-user limit reached")
	ErrCouponInvalid      = errors.New("coupon invalid")
	ErrCouponCodeTaken    = errors.New("coupon code already in use")

	ErrRuleNotFound = errors.New("discount rule not found")
	ErrRuleInvalid  = errors.New("discount rule invalid")

	ErrProductNotFound  = errors.New("product not found")
	ErrProductInvalid   = errors.New("product invalid")
	ErrSlugTaken        = errors.New("slug already in use")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInvalid  = errors.New("category invalid")

	ErrBannerNotFound = errors.New("banner not found")
	ErrBannerInvalid  = errors.New("banner invalid")

	ErrPostNotFound = errors.New("post not found")
	ErrPostInvalid  = errors.New("post invalid")

	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrPrescriptionInvalid  = errors.New("prescription invalid")
	ErrPrescriptionReviewed = errors.New("prescription already reviewed")
)
