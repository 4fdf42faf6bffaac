// Package validation implements the work item consistency validator: a
// pure engine that checks required-field completeness, date and
// work-tracking consistency, and synthesizes default values for fields
// that are missing or contradictory.
package validation

import (
	"time"

	"sprintsense/internal/domain"
)

// Result is the combined outcome of a validation pass over one work item.
// It is derived fresh per call and holds no references into the item.
type Result struct {
	ID                 int
	Title              string
	Type               domain.WorkItemType
	State              string
	MissingFields      []string
	InvalidFields      []string // human-readable reasons
	InvalidFieldLabels []string
	FieldsToFix        []string // missing ∪ invalid, deduplicated
	IsComplete         bool
	HasIssues          bool
	TimelineWarning    string
	PlannedStartDate   *time.Time
	PlannedEndDate     *time.Time
}

// Validate runs the completeness and consistency checkers over one item.
// It never fails: malformed input surfaces as missing or invalid fields.
func Validate(item *domain.WorkItem) Result {
	res := Result{}
	if item == nil {
		return res
	}

	rules := RulesFor(item.Type)
	missing := CheckCompleteness(item, rules)
	findings := CheckConsistency(item, rules)

	res.ID = item.ID
	res.Title = item.Title
	res.Type = item.Type
	res.State = item.State
	res.MissingFields = missing
	res.InvalidFields = findings.Messages
	res.InvalidFieldLabels = findings.Labels
	res.TimelineWarning = findings.TimelineWarning

	seen := make(map[string]bool, len(missing)+len(findings.Labels))
	for _, l := range missing {
		if !seen[l] {
			seen[l] = true
			res.FieldsToFix = append(res.FieldsToFix, l)
		}
	}
	for _, l := range findings.Labels {
		if !seen[l] {
			seen[l] = true
			res.FieldsToFix = append(res.FieldsToFix, l)
		}
	}

	res.IsComplete = len(missing) == 0 && len(findings.Labels) == 0
	res.HasIssues = !res.IsComplete || res.TimelineWarning != ""

	res.PlannedStartDate, res.PlannedEndDate = plannedWindow(item)

	return res
}

// plannedWindow extracts the item's planned date range, ignoring values
// below the floor date.
func plannedWindow(item *domain.WorkItem) (*time.Time, *time.Time) {
	endRef := domain.FieldFinishDate
	if item.Type == domain.TypeFeature {
		endRef = domain.FieldTargetDate
	}

	var start, end *time.Time
	if t, ok := item.DateField(domain.FieldStartDate); ok && !t.Before(floorDate) {
		start = &t
	}
	if t, ok := item.DateField(endRef); ok && !t.Before(floorDate) {
		end = &t
	}
	return start, end
}

// BuildContext assembles the synthesis context for an item from its
// current fields and validation result. Window dates that are themselves
// fix targets are withheld so synthesis recomputes them instead of
// anchoring on a bad value.
func BuildContext(item *domain.WorkItem, res Result, now time.Time) Context {
	fix := make(map[string]bool, len(res.FieldsToFix))
	for _, l := range res.FieldsToFix {
		fix[l] = true
	}

	ctx := Context{
		Now:       now,
		Title:     item.Title,
		Original:  item.NumberField(domain.FieldOriginalEstimate),
		Remaining: item.NumberField(domain.FieldRemainingWork),
		Completed: item.NumberField(domain.FieldCompletedWork),
	}

	switch item.Type {
	case domain.TypeUserStory:
		ctx.StoryPoints = item.NumberField(domain.FieldStoryPoints)
	case domain.TypeFeature:
		ctx.StoryPoints = item.NumberField(domain.FieldEffort)
	}

	if res.PlannedStartDate != nil && !fix[startLabelFor(item.Type)] {
		ctx.PlannedStart = res.PlannedStartDate
	}
	if res.PlannedEndDate != nil && !fix[endLabelFor(item.Type)] {
		ctx.PlannedEnd = res.PlannedEndDate
	}

	// When the start itself is being replaced, a stored end behind the new
	// anchor would leave the window inverted after the fix is applied.
	// Withhold it so synthesis recomputes the end from the anchor.
	anchor := now
	if ctx.PlannedStart != nil {
		anchor = *ctx.PlannedStart
	}
	if ctx.PlannedEnd != nil && ctx.PlannedEnd.Before(anchor) {
		ctx.PlannedEnd = nil
	}

	return ctx
}

func startLabelFor(t domain.WorkItemType) string {
	if t == domain.TypeUserStory {
		return LabelPlannedStartDate
	}
	return LabelStartDate
}

func endLabelFor(t domain.WorkItemType) string {
	switch t {
	case domain.TypeUserStory:
		return LabelPlannedEndDate
	case domain.TypeFeature:
		return LabelTargetDate
	default:
		return LabelFinishDate
	}
}
