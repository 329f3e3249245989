package permissions

import (
	"testing"

	"github.com/AlexCourivaud/ShareTech2/constants"
	"github.com/AlexCourivaud/ShareTech2/models"
)

func TestRankOrdering(t *testing.T) {
	order := []string{constants.RoleJunior, constants.RoleSenior, constants.RoleLead, constants.RoleAdmin}
	for i := 1; i < len(order); i++ {
		if constants.RoleRank(order[i]) <= constants.RoleRank(order[i-1]) {
			t.Fatalf("expected %s > %s", order[i], order[i-1])
		}
	}
	if constants.RoleRank("manager") != -1 {
		t.Fatalf("unknown role must rank -1")
	}
	if constants.RoleAtLeast("manager", constants.RoleJunior) {
		t.Fatalf("unknown role must never pass a threshold")
	}
	if actor := (Actor{ID: 1, Role: "manager"}); actor.AtLeast(constants.RoleJunior) {
		t.Fatalf("actor with unknown role must fail AtLeast")
	}
}

func TestSuperuserAlwaysRanksAsAdmin(t *testing.T) {
	actor := Actor{ID: 1, Role: constants.RoleJunior, IsSuperuser: true}
	if actor.Rank() != constants.RoleRank(constants.RoleAdmin) {
		t.Fatalf("superuser must rank as admin, got %d", actor.Rank())
	}
	if !CanChangeUserRole(actor).Allowed {
		t.Fatalf("superuser must pass admin-only checks")
	}
}

func TestProjectPolicy(t *testing.T) {
	junior := Actor{ID: 1, Role: constants.RoleJunior}
	lead := Actor{ID: 2, Role: constants.RoleLead}
	project := models.Project{ID: 10, CreatedByID: 1}

	if CanCreateProject(junior).Allowed {
		t.Fatalf("junior must not create projects")
	}
	if d := CanCreateProject(junior); d.Reason != ReasonLeadOnly {
		t.Fatalf("expected reason %s, got %s", ReasonLeadOnly, d.Reason)
	}
	if !CanModifyProject(junior, project).Allowed {
		t.Fatalf("creator may modify own project regardless of rank")
	}
	if !CanModifyProject(lead, models.Project{ID: 11, CreatedByID: 99}).Allowed {
		t.Fatalf("lead may modify any project")
	}
	if CanReadProject(junior, models.Project{ID: 11, CreatedByID: 99}, false).Allowed {
		t.Fatalf("non-member junior must not read")
	}
	if !CanReadProject(junior, models.Project{ID: 11, CreatedByID: 99}, true).Allowed {
		t.Fatalf("member may read")
	}
}

func TestNoteAndCommentPolicy(t *testing.T) {
	author := Actor{ID: 1, Role: constants.RoleJunior}
	otherJunior := Actor{ID: 2, Role: constants.RoleJunior}
	senior := Actor{ID: 3, Role: constants.RoleSenior}
	note := models.Note{ID: 5, AuthorID: 1}

	if !CanModifyNote(author, note).Allowed {
		t.Fatalf("author may edit")
	}
	if !CanModifyNote(senior, note).Allowed {
		t.Fatalf("senior may edit")
	}
	if CanModifyNote(otherJunior, note).Allowed {
		t.Fatalf("unrelated junior must not edit")
	}

	authorID := uint(1)
	comment := models.Comment{ID: 7, AuthorID: &authorID}
	if !CanModifyComment(author, comment).Allowed || CanModifyComment(otherJunior, comment).Allowed {
		t.Fatalf("comment policy mismatch")
	}
	orphan := models.Comment{ID: 8}
	if CanModifyComment(author, orphan).Allowed {
		t.Fatalf("nulled author leaves only the senior+ path")
	}
	if !CanModifyComment(senior, orphan).Allowed {
		t.Fatalf("senior may edit orphaned comments")
	}
}

func TestTaskPolicy(t *testing.T) {
	assigneeID := uint(1)
	assignee := Actor{ID: 1, Role: constants.RoleJunior}
	bystander := Actor{ID: 2, Role: constants.RoleSenior}
	lead := Actor{ID: 3, Role: constants.RoleLead}
	assigned := models.Task{ID: 4, AssignedToID: &assigneeID}
	unassigned := models.Task{ID: 5}

	if !CanSeeTask(assignee, assigned).Allowed || !CanSeeTask(lead, assigned).Allowed {
		t.Fatalf("assignee and lead must see the task")
	}
	if CanSeeTask(bystander, assigned).Allowed {
		t.Fatalf("assigned tasks are hidden from everyone else below lead")
	}
	if !CanSeeTask(bystander, unassigned).Allowed {
		t.Fatalf("unassigned tasks are visible to all")
	}
	if CanUpdateTask(bystander, assigned).Allowed {
		t.Fatalf("only assignee or lead+ may update")
	}
	if CanAdministerTask(bystander).Allowed {
		t.Fatalf("delete/assign/unassign is lead+")
	}
}
