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

type TaskService struct {
	DB *gorm.DB
}

type TaskInput struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Priority       string     `json:"priority"`
	EstimatedHours *float64   `json:"estimated_hours"`
	DueDate        *time.Time `json:"due_date"`
	ProjectID      uint       `json:"project_id"`
	AssignedToID   *uint      `json:"assigned_to_id"`
	TagIDs         []uint     `json:"tag_ids"`
}

func (s *TaskService) Create(actor permissions.Actor, in TaskInput) (*models.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperrors.New(apperrors.KindValidation, "task title is required")
	}
	priority := in.Priority
	if priority == "" {
		priority = constants.TaskPriorityNormal
	}
	if !constants.ValidTaskPriority(priority) {
		return nil, apperrors.Newf(apperrors.KindValidation, "unknown priority %q", priority)
	}
	var project models.Project
	if err := firstOrNotFound(s.DB, &project, in.ProjectID, "project"); err != nil {
		return nil, err
	}

	// Creating with an assignee is an assignment, so it needs lead rank.
	status := constants.TaskStatusOpen
	if in.AssignedToID != nil {
		if d := permissions.CanAdministerTask(actor); !d.Allowed {
			return nil, denied(d, "only leads and admins can assign tasks")
		}
		var assignee models.User
		if err := firstOrNotFound(s.DB, &assignee, *in.AssignedToID, "user"); err != nil {
			return nil, err
		}
		status = constants.TaskStatusAssigned
	}

	task := models.Task{
		Title:          in.Title,
		Description:    in.Description,
		Status:         status,
		Priority:       priority,
		EstimatedHours: in.EstimatedHours,
		DueDate:        in.DueDate,
		ProjectID:      in.ProjectID,
		AssignedToID:   in.AssignedToID,
		CreatedByID:    actor.ID,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		return attachTaskTags(tx, task.ID, in.TagIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.load(task.ID)
}

func (s *TaskService) load(id uint) (*models.Task, error) {
	var task models.Task
	if err := firstOrNotFound(s.DB.Preload("AssignedTo").Preload("TaskTags.Tag"), &task, id, "task"); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) Get(actor permissions.Actor, id uint) (*models.Task, error) {
	task, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if d := permissions.CanSeeTask(actor, *task); !d.Allowed {
		return nil, denied(d, "this task is assigned to someone else")
	}
	return task, nil
}

// List applies the visibility rule: lead+ see every task, everyone else sees
// their own assignments plus unassigned tasks. projectID of 0 means all
// projects.
func (s *TaskService) List(actor permissions.Actor, projectID uint) ([]models.Task, error) {
	q := s.DB.Preload("AssignedTo").Preload("TaskTags.Tag").Order("created_at DESC")
	if projectID != 0 {
		q = q.Where("project_id = ?", projectID)
	}
	if !actor.AtLeast(constants.RoleLead) {
		q = q.Where("assigned_to_id = ? OR assigned_to_id IS NULL", actor.ID)
	}
	var tasks []models.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// MyTasks lists only the actor's assignments.
func (s *TaskService) MyTasks(actor permissions.Actor) ([]models.Task, error) {
	var tasks []models.Task
	err := s.DB.Preload("TaskTags.Tag").
		Where("assigned_to_id = ?", actor.ID).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

type TaskUpdateInput struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Priority       string     `json:"priority"`
	EstimatedHours *float64   `json:"estimated_hours"`
	ActualHours    *float64   `json:"actual_hours"`
	DueDate        *time.Time `json:"due_date"`
}

// Update edits task fields. Status changes go through ChangeStatus and
// assignment through Assign/Unassign.
func (s *TaskService) Update(actor permissions.Actor, id uint, in TaskUpdateInput) (*models.Task, error) {
	var task models.Task
	if err := firstOrNotFound(s.DB, &task, id, "task"); err != nil {
		return nil, err
	}
	if d := permissions.CanUpdateTask(actor, task); !d.Allowed {
		return nil, denied(d, "only the assignee or a lead+ can modify this task")
	}
	if in.Priority != "" && !constants.ValidTaskPriority(in.Priority) {
		return nil, apperrors.Newf(apperrors.KindValidation, "unknown priority %q", in.Priority)
	}

	if in.Title != "" {
		task.Title = in.Title
	}
	if in.Description != "" {
		task.Description = in.Description
	}
	if in.Priority != "" {
		task.Priority = in.Priority
	}
	if in.EstimatedHours != nil {
		task.EstimatedHours = in.EstimatedHours
	}
	if in.ActualHours != nil {
		task.ActualHours = in.ActualHours
	}
	if in.DueDate != nil {
		task.DueDate = in.DueDate
	}
	if err := s.DB.Save(&task).Error; err != nil {
		return nil, err
	}
	return s.load(task.ID)
}

func (s *TaskService) Delete(actor permissions.Actor, id uint) error {
	if d := permissions.CanAdministerTask(actor); !d.Allowed {
		return denied(d, "only leads and admins can delete tasks")
	}
	var task models.Task
	if err := firstOrNotFound(s.DB, &task, id, "task"); err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return deleteTaskCascade(tx, []uint{id})
	})
}

// Assign gives the task to a user and moves an open task to assigned.
func (s *TaskService) Assign(actor permissions.Actor, taskID, userID uint) (*models.Task, error) {
	if d := permissions.CanAdministerTask(actor); !d.Allowed {
		return nil, denied(d, "only leads and admins can assign tasks")
	}
	var task models.Task
	if err := firstOrNotFound(s.DB, &task, taskID, "task"); err != nil {
		return nil, err
	}
	var assignee models.User
	if err := firstOrNotFound(s.DB, &assignee, userID, "user"); err != nil {
		return nil, err
	}

	task.AssignedToID = &userID
	if task.Status == constants.TaskStatusOpen {
		task.Status = constants.TaskStatusAssigned
	}
	if err := s.DB.Save(&task).Error; err != nil {
		return nil, err
	}
	return s.load(task.ID)
}

// Unassign clears the assignee and returns the task to open.
func (s *TaskService) Unassign(actor permissions.Actor, taskID uint) (*models.Task, error) {
	if d := permissions.CanAdministerTask(actor); !d.Allowed {
		return nil, denied(d, "only leads and admins can unassign tasks")
	}
	var task models.Task
	if err := firstOrNotFound(s.DB, &task, taskID, "task"); err != nil {
		return nil, err
	}
	if task.AssignedToID == nil {
		return nil, apperrors.New(apperrors.KindAlreadyInState, "task is not assigned")
	}

	task.AssignedToID = nil
	task.Status = constants.TaskStatusOpen
	if err := s.DB.Save(&task).Error; err != nil {
		return nil, err
	}
	return s.load(task.ID)
}

// ChangeStatus moves the task through open -> assigned -> done. The target
// is validated before any permission check or write. Entering done stamps
// the completion date exactly once; re-entering done never re-stamps.
func (s *TaskService) ChangeStatus(actor permissions.Actor, taskID uint, status string) (*models.Task, error) {
	if !constants.ValidTaskStatus(status) {
		return nil, apperrors.Newf(apperrors.KindInvalidStatus, "unknown task status %q", status)
	}
	var task models.Task
	if err := firstOrNotFound(s.DB, &task, taskID, "task"); err != nil {
		return nil, err
	}
	if d := permissions.CanChangeTaskStatus(actor, task); !d.Allowed {
		return nil, denied(d, "only the assignee or a lead+ can change the status")
	}

	if status == constants.TaskStatusDone && task.CompletedDate == nil {
		now := time.Now()
		task.CompletedDate = &now
	}
	task.Status = status
	if err := s.DB.Save(&task).Error; err != nil {
		return nil, err
	}
	return s.load(task.ID)
}

// AttachTags adds tags to the task's existing set.
func (s *TaskService) AttachTags(actor permissions.Actor, taskID uint, tagIDs []uint) (*models.Task, error) {
	var task models.Task
	if err := firstOrNotFound(s.DB, &task, taskID, "task"); err != nil {
		return nil, err
	}
	if d := permissions.CanUpdateTask(actor, task); !d.Allowed {
		return nil, denied(d, "only the assignee or a lead+ can tag this task")
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return attachTaskTags(tx, taskID, tagIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.load(taskID)
}

// ReplaceTags swaps the task's tag set atomically.
func (s *TaskService) ReplaceTags(actor permissions.Actor, taskID uint, tagIDs []uint) (*models.Task, error) {
	var task models.Task
	if err := firstOrNotFound(s.DB, &task, taskID, "task"); err != nil {
		return nil, err
	}
	if d := permissions.CanUpdateTask(actor, task); !d.Allowed {
		return nil, denied(d, "only the assignee or a lead+ can tag this task")
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return replaceTaskTags(tx, taskID, tagIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.load(taskID)
}
