package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Job 文档处理任务实体（包含处理结果）
type Job struct {
	// 基础字段
	ID       string `gorm:"column:id;primaryKey;type:varchar(64)"`
	OwnerID  string `gorm:"column:owner_id;type:varchar(64);not null;default:'';index:idx_owner_status"`
	InputRef string `gorm:"column:input_ref;type:varchar(512);not null"`

	// 输入分类（创建时从 input_ref 推导，之后不可变）
	InputKind string `gorm:"column:input_kind;type:varchar(16);not null"`
	Category  string `gorm:"column:category;type:varchar(16);not null"`

	// 处理状态与结果
	Status        string         `gorm:"column:status;type:varchar(16);not null;default:'PENDING';index:idx_owner_status;index:idx_status_updated"`
	OutputRef     string         `gorm:"column:output_ref;type:varchar(512)"`
	FailureDetail string         `gorm:"column:failure_detail;type:text"`
	ResultMeta    datatypes.JSON `gorm:"column:result_meta;type:json"`

	// 时间戳
	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;index:idx_status_updated"`
}

// TableName 指定表名
func (Job) TableName() string {
	return "jobs"
}

// 任务状态常量
const (
	JobStatusPending    = "PENDING"
	JobStatusProcessing = "PROCESSING"
	JobStatusCompleted  = "COMPLETED"
	JobStatusFailed     = "FAILED"
)

// OwnerIDGuest owner_id 列的匿名哨兵值（仅存储层使用，代码中用 etprimitive.Identity）
const OwnerIDGuest = ""
