package models

import "time"

// Tag is shared between notes and tasks. Deleting a tag removes its
// associations but never the resources that carried it.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;uniqueIndex" json:"name"`
	Color     string    `gorm:"size:20" json:"color"`
	CreatedAt time.Time `json:"created_at"`
}
