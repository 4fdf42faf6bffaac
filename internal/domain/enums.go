package domain

// WorkItemType identifies the Azure DevOps work item type.
type WorkItemType string

const (
	TypeFeature   WorkItemType = "Feature"
	TypeUserStory WorkItemType = "User Story"
	TypeTask      WorkItemType = "Task"
)

// ValidWorkItemTypes is the canonical set of types the assistant handles.
var ValidWorkItemTypes = map[WorkItemType]bool{
	TypeFeature: true, TypeUserStory: true, TypeTask: true,
}

// ParseWorkItemType maps a raw System.WorkItemType value to a known type.
func ParseWorkItemType(s string) (WorkItemType, bool) {
	t := WorkItemType(s)
	return t, ValidWorkItemTypes[t]
}

// ValidActivities is the canonical set of accepted Task activity values.
var ValidActivities = map[string]bool{
	"Deployment": true, "Design": true, "Development": true,
	"Documentation": true, "Requirements": true, "Testing": true,
}

// DefaultActivity is used when a generated task carries an unknown activity.
const DefaultActivity = "Development"

// NormalizeActivity returns the activity unchanged if valid, otherwise
// DefaultActivity.
func NormalizeActivity(a string) string {
	if ValidActivities[a] {
		return a
	}
	return DefaultActivity
}

// Priority values follow the Azure DevOps convention.
const (
	PriorityCritical = 1
	PriorityHigh     = 2
	PriorityMedium   = 3
	PriorityLow      = 4
)

// PriorityLabel returns a human-readable name for a priority number.
func PriorityLabel(p int) string {
	switch p {
	case PriorityCritical:
		return "Critical"
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return "High"
	}
}
