package sqlstore

import (
	"time"

	"license-hub/types"
)

// User 对应 users 表
type User struct {
	Username     string `gorm:"column:username;primaryKey;type:varchar(100)"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	Email        string `gorm:"column:email;type:varchar(255)"`

	CreatedAt time.Time
}

func (User) TableName() string {
	return "users"
}

// Agreement 对应 agreements 表，修订记录也存在这里，通过 parent_id 指向原协议
type Agreement struct {
	ID         uint         `gorm:"column:id;primaryKey;autoIncrement"`
	Title      string       `gorm:"column:title;type:varchar(255)"`
	Country    string       `gorm:"column:country;type:varchar(100)"`
	Brand      string       `gorm:"column:brand;type:varchar(255)"`
	Licenser   string       `gorm:"column:licenser;type:varchar(255)"`
	Status     types.Status `gorm:"column:status;type:varchar(20);index"`
	StartDate  *time.Time   `gorm:"column:start_date;type:date"`
	EndDate    *time.Time   `gorm:"column:end_date;type:date;index"` // indefinite 时为 NULL
	Indefinite bool         `gorm:"column:indefinite;not null;default:false"`
	// Summary 是模型生成、用户编辑过的文本，不做任何结构化解析
	Summary  string `gorm:"column:summary;type:text"`
	ParentID *uint  `gorm:"column:parent_id;index"`
	Obsolete bool   `gorm:"column:obsolete;not null;default:false"`
	Owner    string `gorm:"column:owner;type:varchar(100);index"`

	CreatedAt time.Time
}

func (Agreement) TableName() string {
	return "agreements"
}

func (a *Agreement) IsAmendment() bool {
	return a.ParentID != nil
}

// Session 登录会话
type Session struct {
	Token     string    `gorm:"column:token;primaryKey;type:varchar(64)"`
	Username  string    `gorm:"column:username;type:varchar(100);index;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`

	CreatedAt time.Time
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
