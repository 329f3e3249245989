package models

import "time"

type Task struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Title          string     `gorm:"size:200" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	Status         string     `gorm:"size:10;default:open" json:"status"`
	Priority       string     `gorm:"size:10;default:normal" json:"priority"`
	EstimatedHours *float64   `json:"estimated_hours"`
	ActualHours    *float64   `json:"actual_hours"`
	DueDate        *time.Time `json:"due_date"`
	CompletedDate  *time.Time `json:"completed_date"`
	ProjectID      uint       `gorm:"index" json:"project_id"`
	AssignedToID   *uint      `gorm:"index" json:"assigned_to_id"`
	AssignedTo     *User      `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	CreatedByID    uint       `json:"created_by_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	TaskTags []TaskTag `gorm:"foreignKey:TaskID" json:"task_tags,omitempty"`
}

type TaskTag struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TaskID     uint      `gorm:"not null;uniqueIndex:uk_task_tag" json:"task_id"`
	TagID      uint      `gorm:"not null;uniqueIndex:uk_task_tag;index" json:"tag_id"`
	AssignedAt time.Time `gorm:"autoCreateTime" json:"assigned_at"`

	Tag *Tag `gorm:"foreignKey:TagID" json:"tag,omitempty"`
}

func (TaskTag) TableName() string { return "task_tags" }
