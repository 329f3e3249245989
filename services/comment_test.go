package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexCourivaud/ShareTech2/apperrors"
	"github.com/AlexCourivaud/ShareTech2/constants"
	"github.com/AlexCourivaud/ShareTech2/models"
)

func commentFixture(t *testing.T) (*CommentService, *NoteService, models.User, models.User, models.Note) {
	t.Helper()
	db := newTestDB(t)
	lead := seedUser(t, db, "lead", constants.RoleLead)
	junior := seedUser(t, db, "junior", constants.RoleJunior)
	project := seedProject(t, db, lead)
	noteSvc := &NoteService{DB: db}
	note, err := noteSvc.Create(actorOf(lead), NoteInput{Title: "N", Content: "c", ProjectID: project.ID})
	require.NoError(t, err)
	return &CommentService{DB: db}, noteSvc, lead, junior, *note
}

func TestCreateComment_RejectsEmptyContent(t *testing.T) {
	svc, _, lead, _, note := commentFixture(t)

	_, err := svc.Create(actorOf(lead), note.ID, CommentInput{Content: "   \t "})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCreateComment_ParentOnDifferentNote(t *testing.T) {
	svc, noteSvc, lead, _, note := commentFixture(t)

	other, err := noteSvc.Create(actorOf(lead), NoteInput{Title: "Other", Content: "c", ProjectID: note.ProjectID})
	require.NoError(t, err)
	parent, err := svc.Create(actorOf(lead), other.ID, CommentInput{Content: "root"})
	require.NoError(t, err)

	_, err = svc.Create(actorOf(lead), note.ID, CommentInput{Content: "reply", ParentCommentID: &parent.ID})
	assert.Equal(t, apperrors.KindInvalidReference, apperrors.KindOf(err))
}

func TestDeleteComment_CascadesTransitively(t *testing.T) {
	svc, _, lead, junior, note := commentFixture(t)

	root, err := svc.Create(actorOf(lead), note.ID, CommentInput{Content: "root"})
	require.NoError(t, err)
	r1, err := svc.Create(actorOf(junior), note.ID, CommentInput{Content: "r1", ParentCommentID: &root.ID})
	require.NoError(t, err)
	r2, err := svc.Create(actorOf(lead), note.ID, CommentInput{Content: "r2", ParentCommentID: &r1.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(actorOf(lead), root.ID))

	var count int64
	svc.DB.Model(&models.Comment{}).Where("id IN ?", []uint{root.ID, r1.ID, r2.ID}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestDeleteComment_AuthorOrSenior(t *testing.T) {
	svc, _, lead, junior, note := commentFixture(t)

	comment, err := svc.Create(actorOf(lead), note.ID, CommentInput{Content: "root"})
	require.NoError(t, err)

	err = svc.Delete(actorOf(junior), comment.ID)
	assert.Equal(t, apperrors.KindPermissionDenied, apperrors.KindOf(err))

	own, err := svc.Create(actorOf(junior), note.ID, CommentInput{Content: "mine"})
	require.NoError(t, err)
	assert.NoError(t, svc.Delete(actorOf(junior), own.ID))
}

func TestUpdateComment_MarksEdited(t *testing.T) {
	svc, _, _, junior, note := commentFixture(t)

	comment, err := svc.Create(actorOf(junior), note.ID, CommentInput{Content: "first"})
	require.NoError(t, err)
	assert.False(t, comment.IsEdited)

	updated, err := svc.Update(actorOf(junior), comment.ID, "second")
	require.NoError(t, err)
	assert.True(t, updated.IsEdited)
	assert.Equal(t, "second", updated.Content)
}

func TestListReplies_DirectChildrenOldestFirst(t *testing.T) {
	svc, _, lead, junior, note := commentFixture(t)

	root, err := svc.Create(actorOf(lead), note.ID, CommentInput{Content: "root"})
	require.NoError(t, err)
	first, err := svc.Create(actorOf(junior), note.ID, CommentInput{Content: "first", ParentCommentID: &root.ID})
	require.NoError(t, err)
	second, err := svc.Create(actorOf(lead), note.ID, CommentInput{Content: "second", ParentCommentID: &root.ID})
	require.NoError(t, err)
	// grandchild must not appear in the direct replies
	_, err = svc.Create(actorOf(lead), note.ID, CommentInput{Content: "nested", ParentCommentID: &first.ID})
	require.NoError(t, err)

	replies, err := svc.ListReplies(root.ID)
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, first.ID, replies[0].ID)
	assert.Equal(t, second.ID, replies[1].ID)
}

func TestTreeForNote_NestsReplies(t *testing.T) {
	svc, _, lead, junior, note := commentFixture(t)

	root, err := svc.Create(actorOf(lead), note.ID, CommentInput{Content: "root"})
	require.NoError(t, err)
	reply, err := svc.Reply(actorOf(junior), root.ID, "reply")
	require.NoError(t, err)
	_, err = svc.Reply(actorOf(lead), reply.ID, "deep")
	require.NoError(t, err)

	tree, err := svc.TreeForNote(note.ID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Replies, 1)
	require.Len(t, tree[0].Replies[0].Replies, 1)
	assert.Equal(t, "deep", tree[0].Replies[0].Replies[0].Content)
}
