// Package services implements the resource lifecycle: every operation takes
// the acting principal explicitly, asks the permissions engine for a
// decision, and mutates the store inside a single transaction. All
// validation and authorization happens before the first write.
package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/AlexCourivaud/ShareTech2/apperrors"
	"github.com/AlexCourivaud/ShareTech2/models"
	"github.com/AlexCourivaud/ShareTech2/permissions"
)

func isProjectMember(db *gorm.DB, projectID, userID uint) (bool, error) {
	var count int64
	err := db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

// denied converts a deny decision into a typed error carrying the reason code.
func denied(d permissions.Decision, message string) error {
	return apperrors.Denied(d.Reason, message)
}

// firstOrNotFound loads a record by primary key, translating gorm's missing
// row into the application NotFound kind.
func firstOrNotFound(db *gorm.DB, dest any, id uint, what string) error {
	if err := db.First(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound(what)
		}
		return err
	}
	return nil
}

// deleteNoteCascade removes notes together with everything they own:
// comments (the whole tree) and tag associations.
func deleteNoteCascade(tx *gorm.DB, noteIDs []uint) error {
	if len(noteIDs) == 0 {
		return nil
	}
	if err := tx.Where("note_id IN ?", noteIDs).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("note_id IN ?", noteIDs).Delete(&models.NoteTag{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", noteIDs).Delete(&models.Note{}).Error
}

// deleteTaskCascade removes tasks together with their tag associations.
func deleteTaskCascade(tx *gorm.DB, taskIDs []uint) error {
	if len(taskIDs) == 0 {
		return nil
	}
	if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TaskTag{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", taskIDs).Delete(&models.Task{}).Error
}
