// Package permissions holds the authorization engine: pure decision functions
// over an actor, an action and a resource. Nothing here touches the database;
// facts like project membership are resolved by the caller and passed in.
package permissions

import (
	"github.com/AlexCourivaud/ShareTech2/constants"
	"github.com/AlexCourivaud/ShareTech2/models"
)

// Actor is the authenticated principal every core operation receives
// explicitly. It is rebuilt from the user row on each request so that role
// and superuser changes take effect immediately.
type Actor struct {
	ID          uint
	Role        string
	IsSuperuser bool
}

// ActorFor derives the actor descriptor from a user record.
func ActorFor(u models.User) Actor {
	return Actor{ID: u.ID, Role: u.Role, IsSuperuser: u.IsSuperuser}
}

// Rank returns the actor's effective seniority. Superusers always rank as
// admin regardless of the stored role.
func (a Actor) Rank() int {
	if a.IsSuperuser {
		return constants.RoleRank(constants.RoleAdmin)
	}
	return constants.RoleRank(a.Role)
}

// AtLeast reports whether the actor's effective rank reaches the given role.
func (a Actor) AtLeast(role string) bool {
	if a.IsSuperuser {
		return constants.RoleAtLeast(constants.RoleAdmin, role)
	}
	return constants.RoleAtLeast(a.Role, role)
}

// IsAdmin reports admin-level rank (admin role or superuser).
func (a Actor) IsAdmin() bool {
	return a.AtLeast(constants.RoleAdmin)
}

// Stable deny reason codes. Callers map these to transport errors without
// re-deriving policy.
const (
	ReasonNotCreator  = "not_creator_or_lead"
	ReasonNotMember   = "not_member"
	ReasonNotAuthor   = "not_author_or_senior"
	ReasonNotAssignee = "not_assignee_or_lead"
	ReasonAdminOnly   = "admin_only"
	ReasonLeadOnly    = "lead_only"
	ReasonNotVisible  = "not_visible"
)

// Decision is the result of an authorization check.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision             { return Decision{Allowed: true} }
func deny(reason string) Decision { return Decision{Reason: reason} }

// CanCreateProject: lead+.
func CanCreateProject(actor Actor) Decision {
	if actor.AtLeast(constants.RoleLead) {
		return allow()
	}
	return deny(ReasonLeadOnly)
}

// CanModifyProject covers update and delete: lead+ or the project creator.
func CanModifyProject(actor Actor, project models.Project) Decision {
	if actor.AtLeast(constants.RoleLead) || actor.ID == project.CreatedByID {
		return allow()
	}
	return deny(ReasonNotCreator)
}

// CanReadProject: member, creator or superuser.
func CanReadProject(actor Actor, project models.Project, isMember bool) Decision {
	if isMember || actor.ID == project.CreatedByID || actor.IsSuperuser {
		return allow()
	}
	return deny(ReasonNotMember)
}

// CanManageProject covers addMember, removeMember and terminate: lead+.
func CanManageProject(actor Actor) Decision {
	if actor.AtLeast(constants.RoleLead) {
		return allow()
	}
	return deny(ReasonLeadOnly)
}

// CanReadNote: senior+, project member, or the author.
func CanReadNote(actor Actor, note models.Note, isMember bool) Decision {
	if actor.AtLeast(constants.RoleSenior) || isMember || actor.ID == note.AuthorID {
		return allow()
	}
	return deny(ReasonNotMember)
}

// CanModifyNote covers update and delete: the author or senior+.
func CanModifyNote(actor Actor, note models.Note) Decision {
	if actor.ID == note.AuthorID || actor.AtLeast(constants.RoleSenior) {
		return allow()
	}
	return deny(ReasonNotAuthor)
}

// CanModifyComment covers update and delete: the author or senior+. A nulled
// author (deleted account) leaves only the senior+ path.
func CanModifyComment(actor Actor, comment models.Comment) Decision {
	if comment.AuthorID != nil && *comment.AuthorID == actor.ID {
		return allow()
	}
	if actor.AtLeast(constants.RoleSenior) {
		return allow()
	}
	return deny(ReasonNotAuthor)
}

// CanSeeTask: lead+ sees every task; everyone else sees only their own
// assignments and unassigned tasks.
func CanSeeTask(actor Actor, task models.Task) Decision {
	if actor.AtLeast(constants.RoleLead) {
		return allow()
	}
	if task.AssignedToID == nil || *task.AssignedToID == actor.ID {
		return allow()
	}
	return deny(ReasonNotVisible)
}

// CanUpdateTask: lead+ or the assignee.
func CanUpdateTask(actor Actor, task models.Task) Decision {
	if actor.AtLeast(constants.RoleLead) {
		return allow()
	}
	if task.AssignedToID != nil && *task.AssignedToID == actor.ID {
		return allow()
	}
	return deny(ReasonNotAssignee)
}

// CanAdministerTask covers delete, assign and unassign: lead+.
func CanAdministerTask(actor Actor) Decision {
	if actor.AtLeast(constants.RoleLead) {
		return allow()
	}
	return deny(ReasonLeadOnly)
}

// CanChangeTaskStatus: lead+ or the assignee.
func CanChangeTaskStatus(actor Actor, task models.Task) Decision {
	return CanUpdateTask(actor, task)
}

// CanChangeUserRole: admin rank only.
func CanChangeUserRole(actor Actor) Decision {
	if actor.IsAdmin() {
		return allow()
	}
	return deny(ReasonAdminOnly)
}

// CanDeleteUser: admin rank only.
func CanDeleteUser(actor Actor) Decision {
	if actor.IsAdmin() {
		return allow()
	}
	return deny(ReasonAdminOnly)
}

// CanListUsers: admin rank only.
func CanListUsers(actor Actor) Decision {
	if actor.IsAdmin() {
		return allow()
	}
	return deny(ReasonAdminOnly)
}

// CanCreateTag: lead+.
func CanCreateTag(actor Actor) Decision {
	if actor.AtLeast(constants.RoleLead) {
		return allow()
	}
	return deny(ReasonLeadOnly)
}

// CanDeleteTag: admin rank only.
func CanDeleteTag(actor Actor) Decision {
	if actor.IsAdmin() {
		return allow()
	}
	return deny(ReasonAdminOnly)
}
