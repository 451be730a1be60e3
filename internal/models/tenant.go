package models

// Tenant 租户模型 - 顶层隔离边界，用户和工作区都归属于唯一租户
type Tenant struct {
	BaseModel
	Name string `json:"name" gorm:"not null;size:100"`
}

// TableName 表名
func (t *Tenant) TableName() string {
	return "tenants"
}
