package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/AlexCourivaud/ShareTech2/apperrors"
	"github.com/AlexCourivaud/ShareTech2/models"
	"github.com/AlexCourivaud/ShareTech2/permissions"
)

type CommentService struct {
	DB *gorm.DB
}

// CommentNode is the read-side tree projection: a comment with its replies
// nested, replies ordered oldest first.
type CommentNode struct {
	models.Comment
	AuthorName string        `json:"author_name"`
	Replies    []CommentNode `json:"replies"`
}

type CommentInput struct {
	Content         string `json:"content"`
	ParentCommentID *uint  `json:"parent_comment_id"`
}

// Create adds a comment to a note, optionally as a reply. The parent must
// belong to the same note. The parent reference is write-once, which is what
// keeps the tree acyclic: a new comment has no descendants, so it can never
// be parented under one.
func (s *CommentService) Create(actor permissions.Actor, noteID uint, in CommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, apperrors.New(apperrors.KindValidation, "comment content cannot be empty")
	}
	var note models.Note
	if err := firstOrNotFound(s.DB, &note, noteID, "note"); err != nil {
		return nil, err
	}
	if in.ParentCommentID != nil {
		var parent models.Comment
		if err := firstOrNotFound(s.DB, &parent, *in.ParentCommentID, "parent comment"); err != nil {
			return nil, err
		}
		if parent.NoteID != noteID {
			return nil, apperrors.New(apperrors.KindInvalidReference, "parent comment belongs to a different note")
		}
	}

	authorID := actor.ID
	comment := models.Comment{
		Content:         in.Content,
		NoteID:          noteID,
		AuthorID:        &authorID,
		ParentCommentID: in.ParentCommentID,
	}
	if err := s.DB.Create(&comment).Error; err != nil {
		return nil, err
	}
	return s.load(comment.ID)
}

func (s *CommentService) load(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := firstOrNotFound(s.DB.Preload("Author"), &comment, id, "comment"); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentService) Update(actor permissions.Actor, id uint, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.New(apperrors.KindValidation, "comment content cannot be empty")
	}
	var comment models.Comment
	if err := firstOrNotFound(s.DB, &comment, id, "comment"); err != nil {
		return nil, err
	}
	if d := permissions.CanModifyComment(actor, comment); !d.Allowed {
		return nil, denied(d, "only the author or a senior+ can edit this comment")
	}

	comment.Content = content
	comment.IsEdited = true
	if err := s.DB.Save(&comment).Error; err != nil {
		return nil, err
	}
	return s.load(comment.ID)
}

// Delete removes a comment and every transitive reply under it, in one
// transaction. Descendants are collected level by level through the parent
// index, so depth is bounded by the actual tree, not by recursion.
func (s *CommentService) Delete(actor permissions.Actor, id uint) error {
	var comment models.Comment
	if err := firstOrNotFound(s.DB, &comment, id, "comment"); err != nil {
		return err
	}
	if d := permissions.CanModifyComment(actor, comment); !d.Allowed {
		return denied(d, "only the author or a senior+ can delete this comment")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		ids := []uint{id}
		frontier := []uint{id}
		for len(frontier) > 0 {
			var children []uint
			if err := tx.Model(&models.Comment{}).
				Where("parent_comment_id IN ?", frontier).
				Pluck("id", &children).Error; err != nil {
				return err
			}
			ids = append(ids, children...)
			frontier = children
		}
		return tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error
	})
}

// ListReplies returns the direct children of a comment, oldest first.
func (s *CommentService) ListReplies(id uint) ([]models.Comment, error) {
	var parent models.Comment
	if err := firstOrNotFound(s.DB, &parent, id, "comment"); err != nil {
		return nil, err
	}
	var replies []models.Comment
	err := s.DB.Preload("Author").
		Where("parent_comment_id = ?", id).
		Order("created_at ASC").
		Find(&replies).Error
	if err != nil {
		return nil, err
	}
	return replies, nil
}

// Reply creates a reply under an existing comment on the same note.
func (s *CommentService) Reply(actor permissions.Actor, parentID uint, content string) (*models.Comment, error) {
	var parent models.Comment
	if err := firstOrNotFound(s.DB, &parent, parentID, "comment"); err != nil {
		return nil, err
	}
	return s.Create(actor, parent.NoteID, CommentInput{Content: content, ParentCommentID: &parentID})
}

// TreeForNote builds the full comment tree for a note with a single query
// and an indexed child lookup.
func (s *CommentService) TreeForNote(noteID uint) ([]CommentNode, error) {
	var note models.Note
	if err := firstOrNotFound(s.DB, &note, noteID, "note"); err != nil {
		return nil, err
	}
	var comments []models.Comment
	err := s.DB.Preload("Author").
		Where("note_id = ?", noteID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	children := make(map[uint][]models.Comment)
	var roots []models.Comment
	for _, c := range comments {
		if c.ParentCommentID == nil {
			roots = append(roots, c)
		} else {
			children[*c.ParentCommentID] = append(children[*c.ParentCommentID], c)
		}
	}

	var build func(c models.Comment) CommentNode
	build = func(c models.Comment) CommentNode {
		node := CommentNode{Comment: c, AuthorName: c.AuthorName(), Replies: []CommentNode{}}
		for _, child := range children[c.ID] {
			node.Replies = append(node.Replies, build(child))
		}
		return node
	}

	nodes := make([]CommentNode, 0, len(roots))
	for _, root := range roots {
		nodes = append(nodes, build(root))
	}
	return nodes, nil
}
