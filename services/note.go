package services

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/AlexCourivaud/ShareTech2/apperrors"
	"github.com/AlexCourivaud/ShareTech2/constants"
	"github.com/AlexCourivaud/ShareTech2/models"
	"github.com/AlexCourivaud/ShareTech2/permissions"
)

type NoteService struct {
	DB *gorm.DB
}

type NoteInput struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Status    string `json:"status"`
	ProjectID uint   `json:"project_id"`
	TagIDs    []uint `json:"tag_ids"`
}

func (s *NoteService) Create(actor permissions.Actor, in NoteInput) (*models.Note, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperrors.New(apperrors.KindValidation, "note title is required")
	}
	status := in.Status
	if status == "" {
		status = constants.NoteStatusDraft
	}
	if !constants.ValidNoteStatus(status) {
		return nil, apperrors.Newf(apperrors.KindInvalidStatus, "unknown note status %q", status)
	}
	var project models.Project
	if err := firstOrNotFound(s.DB, &project, in.ProjectID, "project"); err != nil {
		return nil, err
	}

	note := models.Note{
		Title:     in.Title,
		Content:   in.Content,
		Status:    status,
		ProjectID: in.ProjectID,
		AuthorID:  actor.ID,
	}
	if status == constants.NoteStatusPublished {
		now := time.Now()
		note.PublishedAt = &now
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&note).Error; err != nil {
			return err
		}
		return attachNoteTags(tx, note.ID, in.TagIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.load(note.ID)
}

func (s *NoteService) load(id uint) (*models.Note, error) {
	var note models.Note
	if err := firstOrNotFound(s.DB.Preload("Author").Preload("NoteTags.Tag"), &note, id, "note"); err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *NoteService) Get(actor permissions.Actor, id uint) (*models.Note, error) {
	note, err := s.load(id)
	if err != nil {
		return nil, err
	}
	member, err := isProjectMember(s.DB, note.ProjectID, actor.ID)
	if err != nil {
		return nil, err
	}
	if d := permissions.CanReadNote(actor, *note, member); !d.Allowed {
		return nil, denied(d, "you cannot read this note")
	}
	return note, nil
}

// List returns notes visible to the actor, newest first. Senior+ see all
// notes; juniors see notes in their projects plus their own.
func (s *NoteService) List(actor permissions.Actor, projectID uint) ([]models.Note, error) {
	q := s.DB.Preload("Author").Preload("NoteTags.Tag").Order("created_at DESC")
	if projectID != 0 {
		q = q.Where("project_id = ?", projectID)
	}
	if !actor.AtLeast(constants.RoleSenior) {
		q = q.Where(
			"project_id IN (?) OR author_id = ?",
			s.DB.Model(&models.ProjectMember{}).Select("project_id").Where("user_id = ?", actor.ID),
			actor.ID,
		)
	}
	var notes []models.Note
	if err := q.Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

type NoteUpdateInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
}

func (s *NoteService) Update(actor permissions.Actor, id uint, in NoteUpdateInput) (*models.Note, error) {
	var note models.Note
	if err := firstOrNotFound(s.DB, &note, id, "note"); err != nil {
		return nil, err
	}
	if d := permissions.CanModifyNote(actor, note); !d.Allowed {
		return nil, denied(d, "only the author or a senior+ can modify this note")
	}
	if in.Status != "" && !constants.ValidNoteStatus(in.Status) {
		return nil, apperrors.Newf(apperrors.KindInvalidStatus, "unknown note status %q", in.Status)
	}

	if in.Title != "" {
		note.Title = in.Title
	}
	if in.Content != "" {
		note.Content = in.Content
	}
	if in.Status != "" {
		// First transition into published stamps the date, once.
		if in.Status == constants.NoteStatusPublished && note.PublishedAt == nil {
			now := time.Now()
			note.PublishedAt = &now
		}
		note.Status = in.Status
	}
	if err := s.DB.Save(&note).Error; err != nil {
		return nil, err
	}
	return s.load(note.ID)
}

func (s *NoteService) Delete(actor permissions.Actor, id uint) error {
	var note models.Note
	if err := firstOrNotFound(s.DB, &note, id, "note"); err != nil {
		return err
	}
	if d := permissions.CanModifyNote(actor, note); !d.Allowed {
		return denied(d, "only the author or a senior+ can delete this note")
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return deleteNoteCascade(tx, []uint{id})
	})
}

// AttachTags adds tags to a note on top of the existing set.
func (s *NoteService) AttachTags(actor permissions.Actor, noteID uint, tagIDs []uint) (*models.Note, error) {
	var note models.Note
	if err := firstOrNotFound(s.DB, &note, noteID, "note"); err != nil {
		return nil, err
	}
	if d := permissions.CanModifyNote(actor, note); !d.Allowed {
		return nil, denied(d, "only the author or a senior+ can tag this note")
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return attachNoteTags(tx, noteID, tagIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.load(noteID)
}

// ReplaceTags swaps the note's tag set atomically. An empty list leaves the
// note with no tags, which is valid.
func (s *NoteService) ReplaceTags(actor permissions.Actor, noteID uint, tagIDs []uint) (*models.Note, error) {
	var note models.Note
	if err := firstOrNotFound(s.DB, &note, noteID, "note"); err != nil {
		return nil, err
	}
	if d := permissions.CanModifyNote(actor, note); !d.Allowed {
		return nil, denied(d, "only the author or a senior+ can tag this note")
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return replaceNoteTags(tx, noteID, tagIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.load(noteID)
}
