package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/AlexCourivaud/ShareTech2/apperrors"
	"github.com/AlexCourivaud/ShareTech2/models"
	"github.com/AlexCourivaud/ShareTech2/permissions"
)

type ProjectService struct {
	DB *gorm.DB
}

type ProjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Create makes a new project and adds the creator as its first member, in
// one transaction.
func (s *ProjectService) Create(actor permissions.Actor, in ProjectInput) (*models.Project, error) {
	if d := permissions.CanCreateProject(actor); !d.Allowed {
		return nil, denied(d, "only leads and admins can create projects")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperrors.New(apperrors.KindValidation, "project name is required")
	}

	project := models.Project{
		Name:        in.Name,
		Description: in.Description,
		IsActive:    true,
		CreatedByID: actor.ID,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		member := models.ProjectMember{ProjectID: project.ID, UserID: actor.ID}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) Get(actor permissions.Actor, id uint) (*models.Project, error) {
	var project models.Project
	if err := firstOrNotFound(s.DB.Preload("Members.User"), &project, id, "project"); err != nil {
		return nil, err
	}
	member, err := isProjectMember(s.DB, project.ID, actor.ID)
	if err != nil {
		return nil, err
	}
	if d := permissions.CanReadProject(actor, project, member); !d.Allowed {
		return nil, denied(d, "you are not a member of this project")
	}
	return &project, nil
}

// List returns the projects visible to the actor: superusers see everything,
// everyone else sees projects they belong to or created.
func (s *ProjectService) List(actor permissions.Actor) ([]models.Project, error) {
	var projects []models.Project
	q := s.DB.Order("created_at DESC")
	if !actor.IsSuperuser {
		q = q.Where(
			"id IN (?) OR created_by_id = ?",
			s.DB.Model(&models.ProjectMember{}).Select("project_id").Where("user_id = ?", actor.ID),
			actor.ID,
		)
	}
	if err := q.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *ProjectService) Update(actor permissions.Actor, id uint, in ProjectInput) (*models.Project, error) {
	var project models.Project
	if err := firstOrNotFound(s.DB, &project, id, "project"); err != nil {
		return nil, err
	}
	if d := permissions.CanModifyProject(actor, project); !d.Allowed {
		return nil, denied(d, "only the creator or a lead+ can modify this project")
	}
	if in.Name != "" {
		project.Name = in.Name
	}
	if in.Description != "" {
		project.Description = in.Description
	}
	if err := s.DB.Save(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Delete removes the project and everything it owns: members, notes (with
// their comments and tag links) and tasks (with their tag links).
func (s *ProjectService) Delete(actor permissions.Actor, id uint) error {
	var project models.Project
	if err := firstOrNotFound(s.DB, &project, id, "project"); err != nil {
		return err
	}
	if d := permissions.CanModifyProject(actor, project); !d.Allowed {
		return denied(d, "only the creator or a lead+ can delete this project")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var noteIDs []uint
		if err := tx.Model(&models.Note{}).Where("project_id = ?", id).Pluck("id", &noteIDs).Error; err != nil {
			return err
		}
		if err := deleteNoteCascade(tx, noteIDs); err != nil {
			return err
		}

		var taskIDs []uint
		if err := tx.Model(&models.Task{}).Where("project_id = ?", id).Pluck("id", &taskIDs).Error; err != nil {
			return err
		}
		if err := deleteTaskCascade(tx, taskIDs); err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}

// Terminate is the one-way active -> inactive transition. Terminating twice
// is an error, not a no-op.
func (s *ProjectService) Terminate(actor permissions.Actor, id uint) (*models.Project, error) {
	if d := permissions.CanManageProject(actor); !d.Allowed {
		return nil, denied(d, "only leads and admins can terminate projects")
	}
	var project models.Project
	if err := firstOrNotFound(s.DB, &project, id, "project"); err != nil {
		return nil, err
	}
	if !project.IsActive {
		return nil, apperrors.New(apperrors.KindAlreadyTerminated, "project is already terminated")
	}
	project.IsActive = false
	if err := s.DB.Save(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) AddMember(actor permissions.Actor, projectID, userID uint) (*models.ProjectMember, error) {
	if d := permissions.CanManageProject(actor); !d.Allowed {
		return nil, denied(d, "only leads and admins can manage members")
	}
	var project models.Project
	if err := firstOrNotFound(s.DB, &project, projectID, "project"); err != nil {
		return nil, err
	}
	var user models.User
	if err := firstOrNotFound(s.DB, &user, userID, "user"); err != nil {
		return nil, err
	}

	member, err := isProjectMember(s.DB, projectID, userID)
	if err != nil {
		return nil, err
	}
	if member {
		return nil, apperrors.New(apperrors.KindConflict, "user is already a member of this project")
	}

	row := models.ProjectMember{ProjectID: projectID, UserID: userID}
	if err := s.DB.Create(&row).Error; err != nil {
		return nil, err
	}
	row.User = &user
	return &row, nil
}

func (s *ProjectService) RemoveMember(actor permissions.Actor, projectID, userID uint) error {
	if d := permissions.CanManageProject(actor); !d.Allowed {
		return denied(d, "only leads and admins can manage members")
	}
	var project models.Project
	if err := firstOrNotFound(s.DB, &project, projectID, "project"); err != nil {
		return err
	}

	res := s.DB.Where("project_id = ? AND user_id = ?", projectID, userID).Delete(&models.ProjectMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("membership")
	}
	return nil
}
