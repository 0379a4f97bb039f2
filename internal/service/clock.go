package service

import "time"

// Clock 时间源抽象，核心逻辑不直接读取系统时钟，便于测试
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock 返回系统时钟
func SystemClock() Clock {
	return systemClock{}
}

// FixedClock 返回固定时间的时钟
type FixedClock struct {
	T time.Time
}

// Now 返回固定时间
func (c FixedClock) Now() time.Time {
	return c.T
}
