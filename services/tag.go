package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/AlexCourivaud/ShareTech2/apperrors"
	"github.com/AlexCourivaud/ShareTech2/constants"
	"github.com/AlexCourivaud/ShareTech2/models"
	"github.com/AlexCourivaud/ShareTech2/permissions"
)

type TagService struct {
	DB *gorm.DB
}

func (s *TagService) List() ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.DB.Order("name").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *TagService) Get(id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := firstOrNotFound(s.DB, &tag, id, "tag"); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *TagService) Create(actor permissions.Actor, name, color string) (*models.Tag, error) {
	if d := permissions.CanCreateTag(actor); !d.Allowed {
		return nil, denied(d, "only leads and admins can create tags")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.New(apperrors.KindValidation, "tag name is required")
	}
	if len(name) > constants.MaxTagNameLength {
		return nil, apperrors.Newf(apperrors.KindValidation, "tag name exceeds %d characters", constants.MaxTagNameLength)
	}

	var count int64
	if err := s.DB.Model(&models.Tag{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.New(apperrors.KindConflict, "tag name already exists")
	}

	tag := models.Tag{Name: name, Color: color}
	if err := s.DB.Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// Delete removes the tag and its associations on both notes and tasks. The
// notes and tasks themselves are untouched.
func (s *TagService) Delete(actor permissions.Actor, id uint) error {
	if d := permissions.CanDeleteTag(actor); !d.Allowed {
		return denied(d, "only admins can delete tags")
	}
	var tag models.Tag
	if err := firstOrNotFound(s.DB, &tag, id, "tag"); err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.NoteTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tag_id = ?", id).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tag{}, id).Error
	})
}

// existingTagIDs filters the requested ids down to tags that actually exist,
// preserving request order. Unknown ids are dropped silently: clients may
// reference tags optimistically before they are created.
func existingTagIDs(tx *gorm.DB, tagIDs []uint) ([]uint, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	var found []uint
	if err := tx.Model(&models.Tag{}).Where("id IN ?", tagIDs).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	known := make(map[uint]bool, len(found))
	for _, id := range found {
		known[id] = true
	}
	var kept []uint
	seen := make(map[uint]bool, len(tagIDs))
	for _, id := range tagIDs {
		if known[id] && !seen[id] {
			kept = append(kept, id)
			seen[id] = true
		}
	}
	return kept, nil
}

// attachNoteTags adds associations to a note. Attaching a tag that is
// already linked is a conflict. The cap applies to the resulting total, so
// repeated attach calls cannot accumulate past it.
func attachNoteTags(tx *gorm.DB, noteID uint, tagIDs []uint) error {
	if len(tagIDs) > constants.MaxTagsPerResource {
		return apperrors.Newf(apperrors.KindValidation, "too many tags: maximum %d per note", constants.MaxTagsPerResource)
	}
	kept, err := existingTagIDs(tx, tagIDs)
	if err != nil {
		return err
	}
	var current int64
	if err := tx.Model(&models.NoteTag{}).Where("note_id = ?", noteID).Count(&current).Error; err != nil {
		return err
	}
	if int(current)+len(kept) > constants.MaxTagsPerResource {
		return apperrors.Newf(apperrors.KindValidation, "too many tags: maximum %d per note", constants.MaxTagsPerResource)
	}
	for _, tagID := range kept {
		var count int64
		if err := tx.Model(&models.NoteTag{}).Where("note_id = ? AND tag_id = ?", noteID, tagID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperrors.New(apperrors.KindConflict, "tag is already attached to this note")
		}
		if err := tx.Create(&models.NoteTag{NoteID: noteID, TagID: tagID}).Error; err != nil {
			return err
		}
	}
	return nil
}

// replaceNoteTags implements full-replace semantics: wipe then attach, all
// inside the caller's transaction so a failure leaves the old set intact.
func replaceNoteTags(tx *gorm.DB, noteID uint, tagIDs []uint) error {
	if len(tagIDs) > constants.MaxTagsPerResource {
		return apperrors.Newf(apperrors.KindValidation, "too many tags: maximum %d per note", constants.MaxTagsPerResource)
	}
	if err := tx.Where("note_id = ?", noteID).Delete(&models.NoteTag{}).Error; err != nil {
		return err
	}
	kept, err := existingTagIDs(tx, tagIDs)
	if err != nil {
		return err
	}
	for _, tagID := range kept {
		if err := tx.Create(&models.NoteTag{NoteID: noteID, TagID: tagID}).Error; err != nil {
			return err
		}
	}
	return nil
}

func attachTaskTags(tx *gorm.DB, taskID uint, tagIDs []uint) error {
	if len(tagIDs) > constants.MaxTagsPerResource {
		return apperrors.Newf(apperrors.KindValidation, "too many tags: maximum %d per task", constants.MaxTagsPerResource)
	}
	kept, err := existingTagIDs(tx, tagIDs)
	if err != nil {
		return err
	}
	var current int64
	if err := tx.Model(&models.TaskTag{}).Where("task_id = ?", taskID).Count(&current).Error; err != nil {
		return err
	}
	if int(current)+len(kept) > constants.MaxTagsPerResource {
		return apperrors.Newf(apperrors.KindValidation, "too many tags: maximum %d per task", constants.MaxTagsPerResource)
	}
	for _, tagID := range kept {
		var count int64
		if err := tx.Model(&models.TaskTag{}).Where("task_id = ? AND tag_id = ?", taskID, tagID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperrors.New(apperrors.KindConflict, "tag is already attached to this task")
		}
		if err := tx.Create(&models.TaskTag{TaskID: taskID, TagID: tagID}).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceTaskTags(tx *gorm.DB, taskID uint, tagIDs []uint) error {
	if len(tagIDs) > constants.MaxTagsPerResource {
		return apperrors.Newf(apperrors.KindValidation, "too many tags: maximum %d per task", constants.MaxTagsPerResource)
	}
	if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskTag{}).Error; err != nil {
		return err
	}
	kept, err := existingTagIDs(tx, tagIDs)
	if err != nil {
		return err
	}
	for _, tagID := range kept {
		if err := tx.Create(&models.TaskTag{TaskID: taskID, TagID: tagID}).Error; err != nil {
			return err
		}
	}
	return nil
}
