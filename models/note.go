package models

import "time"

type Note struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:200" json:"title"`
	Content     string     `gorm:"type:text" json:"content"`
	Status      string     `gorm:"size:10;default:draft" json:"status"`
	ProjectID   uint       `gorm:"index" json:"project_id"`
	AuthorID    uint       `gorm:"index" json:"author_id"`
	Author      *User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at"`

	NoteTags []NoteTag `gorm:"foreignKey:NoteID" json:"note_tags,omitempty"`
}

// NoteTag is the association record between a note and a tag. It exists as a
// real row because it carries its own assignment timestamp and is cleaned up
// independently of the note and the tag.
type NoteTag struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	NoteID     uint      `gorm:"not null;uniqueIndex:uk_note_tag" json:"note_id"`
	TagID      uint      `gorm:"not null;uniqueIndex:uk_note_tag;index" json:"tag_id"`
	AssignedAt time.Time `gorm:"autoCreateTime" json:"assigned_at"`

	Tag *Tag `gorm:"foreignKey:TagID" json:"tag,omitempty"`
}

func (NoteTag) TableName() string { return "note_tags" }
