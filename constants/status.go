package constants

const (
	NoteStatusDraft     = "draft"
	NoteStatusPublished = "published"
	NoteStatusArchived  = "archived"
)

const (
	TaskStatusOpen     = "open"
	TaskStatusAssigned = "assigned"
	TaskStatusDone     = "done"
)

const (
	TaskPriorityLow    = "low"
	TaskPriorityNormal = "normal"
	TaskPriorityHigh   = "high"
	TaskPriorityUrgent = "urgent"
)

// MaxTagsPerResource caps how many tags a note or task may carry.
const MaxTagsPerResource = 10

// MaxTagNameLength bounds tag names.
const MaxTagNameLength = 50

func ValidNoteStatus(status string) bool {
	switch status {
	case NoteStatusDraft, NoteStatusPublished, NoteStatusArchived:
		return true
	}
	return false
}

func ValidTaskStatus(status string) bool {
	switch status {
	case TaskStatusOpen, TaskStatusAssigned, TaskStatusDone:
		return true
	}
	return false
}

func ValidTaskPriority(priority string) bool {
	switch priority {
	case TaskPriorityLow, TaskPriorityNormal, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}
