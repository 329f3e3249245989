package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexCourivaud/ShareTech2/apperrors"
	"github.com/AlexCourivaud/ShareTech2/constants"
	"github.com/AlexCourivaud/ShareTech2/models"
)

func TestProjectCreate_LeadOnlyAndAutoMembership(t *testing.T) {
	db := newTestDB(t)
	svc := &ProjectService{DB: db}
	lead := seedUser(t, db, "lead", constants.RoleLead)
	junior := seedUser(t, db, "junior", constants.RoleJunior)

	_, err := svc.Create(actorOf(junior), ProjectInput{Name: "nope"})
	assert.Equal(t, apperrors.KindPermissionDenied, apperrors.KindOf(err))

	project, err := svc.Create(actorOf(lead), ProjectInput{Name: "P", Description: "d"})
	require.NoError(t, err)

	member, err := isProjectMember(db, project.ID, lead.ID)
	require.NoError(t, err)
	assert.True(t, member, "creator must be auto-added as member")

	// junior was never added, so reading is denied
	_, err = svc.Get(actorOf(junior), project.ID)
	assert.Equal(t, apperrors.KindPermissionDenied, apperrors.KindOf(err))

	// until explicitly added
	_, err = svc.AddMember(actorOf(lead), project.ID, junior.ID)
	require.NoError(t, err)
	_, err = svc.Get(actorOf(junior), project.ID)
	assert.NoError(t, err)
}

func TestProjectTerminate_OneWay(t *testing.T) {
	db := newTestDB(t)
	svc := &ProjectService{DB: db}
	lead := seedUser(t, db, "lead", constants.RoleLead)
	junior := seedUser(t, db, "junior", constants.RoleJunior)
	project := seedProject(t, db, lead)

	_, err := svc.Terminate(actorOf(junior), project.ID)
	assert.Equal(t, apperrors.KindPermissionDenied, apperrors.KindOf(err))

	terminated, err := svc.Terminate(actorOf(lead), project.ID)
	require.NoError(t, err)
	assert.False(t, terminated.IsActive)

	_, err = svc.Terminate(actorOf(lead), project.ID)
	assert.Equal(t, apperrors.KindAlreadyTerminated, apperrors.KindOf(err))
}

func TestAddMember_DuplicateIsConflict(t *testing.T) {
	db := newTestDB(t)
	svc := &ProjectService{DB: db}
	lead := seedUser(t, db, "lead", constants.RoleLead)
	junior := seedUser(t, db, "junior", constants.RoleJunior)
	project := seedProject(t, db, lead)

	_, err := svc.AddMember(actorOf(lead), project.ID, junior.ID)
	require.NoError(t, err)
	_, err = svc.AddMember(actorOf(lead), project.ID, junior.ID)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestRemoveMember_MissingMembershipIsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := &ProjectService{DB: db}
	lead := seedUser(t, db, "lead", constants.RoleLead)
	junior := seedUser(t, db, "junior", constants.RoleJunior)
	project := seedProject(t, db, lead)

	err := svc.RemoveMember(actorOf(lead), project.ID, junior.ID)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestProjectDelete_CascadesOwnedResources(t *testing.T) {
	db := newTestDB(t)
	svc := &ProjectService{DB: db}
	noteSvc := &NoteService{DB: db}
	taskSvc := &TaskService{DB: db}
	commentSvc := &CommentService{DB: db}
	lead := seedUser(t, db, "lead", constants.RoleLead)
	project := seedProject(t, db, lead)

	note, err := noteSvc.Create(actorOf(lead), NoteInput{Title: "N", Content: "c", ProjectID: project.ID})
	require.NoError(t, err)
	_, err = commentSvc.Create(actorOf(lead), note.ID, CommentInput{Content: "hi"})
	require.NoError(t, err)
	_, err = taskSvc.Create(actorOf(lead), TaskInput{Title: "T", ProjectID: project.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(actorOf(lead), project.ID))

	for _, m := range []any{&models.Note{}, &models.Comment{}, &models.Task{}, &models.ProjectMember{}} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.EqualValues(t, 0, count)
	}
}

func TestProjectList_ScopedToMembershipOrCreation(t *testing.T) {
	db := newTestDB(t)
	svc := &ProjectService{DB: db}
	lead := seedUser(t, db, "lead", constants.RoleLead)
	other := seedUser(t, db, "other-lead", constants.RoleLead)
	junior := seedUser(t, db, "junior", constants.RoleJunior)
	mine := seedProject(t, db, lead)
	seedProject(t, db, other)

	projects, err := svc.List(actorOf(lead))
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, mine.ID, projects[0].ID)

	projects, err = svc.List(actorOf(junior))
	require.NoError(t, err)
	assert.Empty(t, projects)

	super := seedUser(t, db, "root", constants.RoleJunior)
	super.IsSuperuser = true
	require.NoError(t, db.Save(&super).Error)
	projects, err = svc.List(actorOf(super))
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}
