package types

import (
	"errors"
	"fmt"
	"time"
)

// --- 状态定义 ---

// Status 协议状态，只允许下面四个取值
type Status string

const (
	StatusActive     Status = "Active"
	StatusExpired    Status = "Expired"
	StatusTerminated Status = "Terminated"
	StatusReplaced   Status = "Replaced"
)

var ErrInvalidStatus = errors.New("invalid agreement status")

// Statuses 按页面下拉框顺序返回全部状态
func Statuses() []Status {
	return []Status{StatusActive, StatusExpired, StatusTerminated, StatusReplaced}
}

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusExpired, StatusTerminated, StatusReplaced:
		return true
	}
	return false
}

// ParseStatus 大小写敏感，与库中存储的值一致
func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, v)
	}
	return s, nil
}

// --- 表单结构 ---

const DateLayout = "2006-01-02"

// AgreementDraft 上传协议确认页提交的内容
type AgreementDraft struct {
	Title      string
	Country    string
	Brand      string
	Licenser   string
	Summary    string
	StartDate  time.Time
	EndDate    time.Time
	Indefinite bool
}

// AmendmentDraft 上传修订确认页提交的内容
type AmendmentDraft struct {
	BaseID uint
	Diff   string
}

// UpdateStatusRequest JSON 接口请求体
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ParseDate 解析 YYYY-MM-DD，空字符串返回 fallback
func ParseDate(v string, fallback time.Time) (time.Time, error) {
	if v == "" {
		return DateOnly(fallback), nil
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", v, err)
	}
	return t, nil
}

// DateOnly 截断到 UTC 零点，只保留日历日期
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween 两个日历日期之间相差的天数 (to - from)
func DaysBetween(from, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)).Hours() / 24)
}
