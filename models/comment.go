package models

import "time"

// DeletedAuthorLabel is shown for comments whose author account was removed.
const DeletedAuthorLabel = "[deleted account]"

// Comment is stored flat: replies reference their parent by id and trees are
// rebuilt by indexed child lookup, never by pointer chasing. The parent is
// write-once, so a comment can never become its own ancestor.
type Comment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Content         string    `gorm:"type:text" json:"content"`
	NoteID          uint      `gorm:"index" json:"note_id"`
	AuthorID        *uint     `gorm:"index" json:"author_id"`
	Author          *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	ParentCommentID *uint     `gorm:"index" json:"parent_comment_id"`
	IsEdited        bool      `gorm:"default:false" json:"is_edited"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AuthorName falls back to a placeholder once the author account is gone.
func (c *Comment) AuthorName() string {
	if c.Author == nil {
		return DeletedAuthorLabel
	}
	return c.Author.Username
}
