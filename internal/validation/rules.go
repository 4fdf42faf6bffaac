package validation

import "sprintsense/internal/domain"

// Field labels form the stable vocabulary shared by validation results and
// fix plans.
const (
	LabelPriority         = "Priority"
	LabelRisk             = "Risk"
	LabelEffort           = "Effort"
	LabelBusinessValue    = "Business Value"
	LabelTimeCriticality  = "Time Criticality"
	LabelStartDate        = "Start Date"
	LabelTargetDate       = "Target Date"
	LabelStoryPoints      = "Story Points"
	LabelQAReadyDate      = "QA Ready Date"
	LabelPlannedStartDate = "Planned Start Date"
	LabelPlannedEndDate   = "Planned End Date"
	LabelActualStartDate  = "Actual Start Date"
	LabelActualEndDate    = "Actual End Date"
	LabelActivity         = "Activity"
	LabelFinishDate       = "Finish Date"
	LabelOriginalEstimate = "Original Estimate"
	LabelRemainingWork    = "Remaining Work"
	LabelCompletedWork    = "Completed Work"
)

// Rule describes one required field for a work item type. The rule order
// within a set is the reporting and synthesis order.
type Rule struct {
	FieldRef string
	Label    string
	IsDate   bool
	IsCustom bool
}

var featureRules = []Rule{
	{FieldRef: domain.FieldPriority, Label: LabelPriority},
	{FieldRef: domain.FieldRisk, Label: LabelRisk},
	{FieldRef: domain.FieldEffort, Label: LabelEffort},
	{FieldRef: domain.FieldBusinessValue, Label: LabelBusinessValue},
	{FieldRef: domain.FieldTimeCriticality, Label: LabelTimeCriticality},
	{FieldRef: domain.FieldStartDate, Label: LabelStartDate, IsDate: true},
	{FieldRef: domain.FieldTargetDate, Label: LabelTargetDate, IsDate: true},
}

var userStoryRules = []Rule{
	{FieldRef: domain.FieldStoryPoints, Label: LabelStoryPoints},
	{FieldRef: domain.FieldPriority, Label: LabelPriority},
	{FieldRef: domain.FieldRisk, Label: LabelRisk},
	{FieldRef: domain.FieldQAReadyDate, Label: LabelQAReadyDate, IsDate: true, IsCustom: true},
	{FieldRef: domain.FieldStartDate, Label: LabelPlannedStartDate, IsDate: true},
	{FieldRef: domain.FieldFinishDate, Label: LabelPlannedEndDate, IsDate: true},
	{FieldRef: domain.FieldActualStartDate, Label: LabelActualStartDate, IsDate: true},
	{FieldRef: domain.FieldActualEndDate, Label: LabelActualEndDate, IsDate: true},
}

var taskRules = []Rule{
	{FieldRef: domain.FieldPriority, Label: LabelPriority},
	{FieldRef: domain.FieldActivity, Label: LabelActivity},
	{FieldRef: domain.FieldStartDate, Label: LabelStartDate, IsDate: true},
	{FieldRef: domain.FieldFinishDate, Label: LabelFinishDate, IsDate: true},
	{FieldRef: domain.FieldOriginalEstimate, Label: LabelOriginalEstimate},
	{FieldRef: domain.FieldRemainingWork, Label: LabelRemainingWork},
	{FieldRef: domain.FieldCompletedWork, Label: LabelCompletedWork},
}

// RulesFor returns the required-field rule set for a work item type.
// Unknown types get an empty set.
func RulesFor(t domain.WorkItemType) []Rule {
	switch t {
	case domain.TypeFeature:
		return featureRules
	case domain.TypeUserStory:
		return userStoryRules
	case domain.TypeTask:
		return taskRules
	default:
		return nil
	}
}

// zeroValidLabels lists fields where a stored zero is meaningful and must
// not count as missing. Everything else treats zero as unset.
var zeroValidLabels = map[string]bool{
	LabelCompletedWork: true,
	LabelRemainingWork: true,
}

// fieldRefFor resolves a label to its API field reference within a type's
// rule set. Returns "" when the type has no mapping for the label.
func fieldRefFor(t domain.WorkItemType, label string) string {
	for _, r := range RulesFor(t) {
		if r.Label == label {
			return r.FieldRef
		}
	}
	return ""
}
