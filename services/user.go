package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/AlexCourivaud/ShareTech2/apperrors"
	"github.com/AlexCourivaud/ShareTech2/constants"
	"github.com/AlexCourivaud/ShareTech2/models"
	"github.com/AlexCourivaud/ShareTech2/permissions"
)

type UserService struct {
	DB *gorm.DB
}

type CreateUserInput struct {
	Username     string
	Email        string
	PasswordHash string
	Role         string
	IsSuperuser  bool
}

// CreateUser creates the account and its role record as one row, in one
// write. Role defaults to junior; superusers are promoted to admin by the
// model hook.
func (s *UserService) CreateUser(in CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, apperrors.New(apperrors.KindValidation, "username is required")
	}
	if in.Role != "" && !constants.ValidRole(in.Role) {
		return nil, apperrors.Newf(apperrors.KindValidation, "unknown role %q", in.Role)
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.New(apperrors.KindConflict, "username already taken")
	}

	user := models.User{
		Username:    username,
		Email:       in.Email,
		Password:    in.PasswordHash,
		Role:        in.Role,
		IsSuperuser: in.IsSuperuser,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) List(actor permissions.Actor) ([]models.User, error) {
	if d := permissions.CanListUsers(actor); !d.Allowed {
		return nil, denied(d, "only admins can list users")
	}
	var users []models.User
	if err := s.DB.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateRole changes a user's seniority role. Admin rank only.
func (s *UserService) UpdateRole(actor permissions.Actor, userID uint, role string) (*models.User, error) {
	if d := permissions.CanChangeUserRole(actor); !d.Allowed {
		return nil, denied(d, "only admins can change roles")
	}
	if !constants.ValidRole(role) {
		return nil, apperrors.Newf(apperrors.KindValidation, "unknown role %q", role)
	}

	var user models.User
	if err := firstOrNotFound(s.DB, &user, userID, "user"); err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.DB.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a user account. Users who created projects are protected
// and cannot be deleted. Everything else follows the referential rules:
// memberships and authored notes go away, authored comments keep their
// content with a nulled author, task assignments are cleared, and tasks the
// user created are removed.
func (s *UserService) Delete(actor permissions.Actor, userID uint) error {
	if d := permissions.CanDeleteUser(actor); !d.Allowed {
		return denied(d, "only admins can delete users")
	}

	var user models.User
	if err := firstOrNotFound(s.DB, &user, userID, "user"); err != nil {
		return err
	}

	var projectCount int64
	if err := s.DB.Model(&models.Project{}).Where("created_by_id = ?", userID).Count(&projectCount).Error; err != nil {
		return err
	}
	if projectCount > 0 {
		return apperrors.New(apperrors.KindConflict, "user still owns projects")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		var noteIDs []uint
		if err := tx.Model(&models.Note{}).Where("author_id = ?", userID).Pluck("id", &noteIDs).Error; err != nil {
			return err
		}
		if err := deleteNoteCascade(tx, noteIDs); err != nil {
			return err
		}

		if err := tx.Model(&models.Comment{}).Where("author_id = ?", userID).
			Update("author_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Task{}).Where("assigned_to_id = ?", userID).
			Update("assigned_to_id", nil).Error; err != nil {
			return err
		}

		var taskIDs []uint
		if err := tx.Model(&models.Task{}).Where("created_by_id = ?", userID).Pluck("id", &taskIDs).Error; err != nil {
			return err
		}
		if err := deleteTaskCascade(tx, taskIDs); err != nil {
			return err
		}

		return tx.Delete(&models.User{}, userID).Error
	})
}

// FindByEmail is used by the login flow.
func (s *UserService) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user")
		}
		return nil, err
	}
	return &user, nil
}
