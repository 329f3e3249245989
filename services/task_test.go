package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexCourivaud/ShareTech2/apperrors"
	"github.com/AlexCourivaud/ShareTech2/constants"
	"github.com/AlexCourivaud/ShareTech2/models"
)

func taskFixture(t *testing.T) (*TaskService, models.User, models.User, models.User, models.Project) {
	t.Helper()
	db := newTestDB(t)
	lead := seedUser(t, db, "lead", constants.RoleLead)
	senior := seedUser(t, db, "senior", constants.RoleSenior)
	junior := seedUser(t, db, "junior", constants.RoleJunior)
	project := seedProject(t, db, lead)
	return &TaskService{DB: db}, lead, senior, junior, project
}

func TestChangeStatus_CompletionStampedOnce(t *testing.T) {
	svc, lead, _, _, project := taskFixture(t)

	task, err := svc.Create(actorOf(lead), TaskInput{Title: "T", ProjectID: project.ID})
	require.NoError(t, err)
	assert.Nil(t, task.CompletedDate)

	done, err := svc.ChangeStatus(actorOf(lead), task.ID, constants.TaskStatusDone)
	require.NoError(t, err)
	require.NotNil(t, done.CompletedDate)
	first := *done.CompletedDate

	again, err := svc.ChangeStatus(actorOf(lead), task.ID, constants.TaskStatusDone)
	require.NoError(t, err)
	require.NotNil(t, again.CompletedDate)
	assert.True(t, first.Equal(*again.CompletedDate), "completion date must not be re-stamped")
}

func TestChangeStatus_InvalidStatusRejectedBeforeMutation(t *testing.T) {
	svc, lead, _, _, project := taskFixture(t)

	task, err := svc.Create(actorOf(lead), TaskInput{Title: "T", ProjectID: project.ID})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(actorOf(lead), task.ID, "cancelled")
	assert.Equal(t, apperrors.KindInvalidStatus, apperrors.KindOf(err))

	got, err := svc.Get(actorOf(lead), task.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.TaskStatusOpen, got.Status)
}

func TestChangeStatus_AssigneeAllowedOthersDenied(t *testing.T) {
	svc, lead, senior, junior, project := taskFixture(t)

	task, err := svc.Create(actorOf(lead), TaskInput{Title: "T", ProjectID: project.ID, AssignedToID: &senior.ID})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(actorOf(junior), task.ID, constants.TaskStatusDone)
	assert.Equal(t, apperrors.KindPermissionDenied, apperrors.KindOf(err))

	_, err = svc.ChangeStatus(actorOf(senior), task.ID, constants.TaskStatusDone)
	assert.NoError(t, err)
}

func TestTaskVisibility_UnassignedVisibleToAll(t *testing.T) {
	svc, lead, senior, junior, project := taskFixture(t)

	task, err := svc.Create(actorOf(lead), TaskInput{Title: "T", ProjectID: project.ID})
	require.NoError(t, err)

	tasks, err := svc.List(actorOf(junior), 0)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	_, err = svc.Assign(actorOf(lead), task.ID, senior.ID)
	require.NoError(t, err)

	tasks, err = svc.List(actorOf(junior), 0)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	// lead still sees everything
	tasks, err = svc.List(actorOf(lead), 0)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)

	_, err = svc.Get(actorOf(junior), task.ID)
	assert.Equal(t, apperrors.KindPermissionDenied, apperrors.KindOf(err))
}

func TestAssign_MovesOpenToAssigned(t *testing.T) {
	svc, lead, senior, _, project := taskFixture(t)

	task, err := svc.Create(actorOf(lead), TaskInput{Title: "T", ProjectID: project.ID})
	require.NoError(t, err)
	assert.Equal(t, constants.TaskStatusOpen, task.Status)

	assigned, err := svc.Assign(actorOf(lead), task.ID, senior.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.TaskStatusAssigned, assigned.Status)
	require.NotNil(t, assigned.AssignedToID)
	assert.Equal(t, senior.ID, *assigned.AssignedToID)
}

func TestUnassign_ReturnsToOpen(t *testing.T) {
	svc, lead, senior, junior, project := taskFixture(t)

	task, err := svc.Create(actorOf(lead), TaskInput{Title: "T", ProjectID: project.ID, AssignedToID: &senior.ID})
	require.NoError(t, err)

	_, err = svc.Unassign(actorOf(junior), task.ID)
	assert.Equal(t, apperrors.KindPermissionDenied, apperrors.KindOf(err))

	open, err := svc.Unassign(actorOf(lead), task.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.TaskStatusOpen, open.Status)
	assert.Nil(t, open.AssignedToID)

	_, err = svc.Unassign(actorOf(lead), task.ID)
	assert.Equal(t, apperrors.KindAlreadyInState, apperrors.KindOf(err))
}

func TestTaskDelete_LeadOnly(t *testing.T) {
	svc, lead, _, junior, project := taskFixture(t)

	task, err := svc.Create(actorOf(lead), TaskInput{Title: "T", ProjectID: project.ID})
	require.NoError(t, err)

	err = svc.Delete(actorOf(junior), task.ID)
	assert.Equal(t, apperrors.KindPermissionDenied, apperrors.KindOf(err))

	require.NoError(t, svc.Delete(actorOf(lead), task.ID))
	_, err = svc.Get(actorOf(lead), task.ID)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestTaskCreate_AssigneeNeedsLeadRank(t *testing.T) {
	svc, _, senior, junior, project := taskFixture(t)

	_, err := svc.Create(actorOf(junior), TaskInput{Title: "T", ProjectID: project.ID, AssignedToID: &senior.ID})
	assert.Equal(t, apperrors.KindPermissionDenied, apperrors.KindOf(err))

	// without an assignee anyone can file a task
	task, err := svc.Create(actorOf(junior), TaskInput{Title: "T", ProjectID: project.ID})
	require.NoError(t, err)
	assert.Equal(t, constants.TaskStatusOpen, task.Status)
}
