package models

import (
	"golang.org/x/crypto/bcrypt"
)

// User 用户模型，软删除：is_deleted=true 且 is_active=false，不做物理删除
type User struct {
	BaseModel
	Email        string `json:"email" gorm:"unique;not null;size:100;index"`
	Username     string `json:"username" gorm:"unique;not null;size:50;index"`
	PasswordHash string `json:"-" gorm:"not null;size:255"`
	TenantID     uint   `json:"tenant_id" gorm:"not null;index"`
	IsActive     bool   `json:"is_active" gorm:"default:true"`
	IsDeleted    bool   `json:"is_deleted" gorm:"default:false"`

	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}

// TableName 表名
func (u *User) TableName() string {
	return "users"
}

// SetPassword 设置密码 - bcrypt加盐哈希，同一明文每次结果不同
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword 验证密码，哈希格式非法时返回false而不是报错
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// CanAuthenticate 账号是否允许认证通过
func (u *User) CanAuthenticate() bool {
	return u.IsActive && !u.IsDeleted
}
