package domain

import (
	"strconv"
	"strings"
	"time"
)

// Azure DevOps field reference names used by the assistant.
const (
	FieldTitle              = "System.Title"
	FieldDescription        = "System.Description"
	FieldWorkItemType       = "System.WorkItemType"
	FieldState              = "System.State"
	FieldAssignedTo         = "System.AssignedTo"
	FieldAreaPath           = "System.AreaPath"
	FieldIterationPath      = "System.IterationPath"
	FieldAcceptanceCriteria = "Microsoft.VSTS.Common.AcceptanceCriteria"
	FieldPriority           = "Microsoft.VSTS.Common.Priority"
	FieldRisk               = "Microsoft.VSTS.Common.Risk"
	FieldActivity           = "Microsoft.VSTS.Common.Activity"
	FieldBusinessValue      = "Microsoft.VSTS.Common.BusinessValue"
	FieldTimeCriticality    = "Microsoft.VSTS.Common.TimeCriticality"
	FieldEffort             = "Microsoft.VSTS.Scheduling.Effort"
	FieldStoryPoints        = "Microsoft.VSTS.Scheduling.StoryPoints"
	FieldStartDate          = "Microsoft.VSTS.Scheduling.StartDate"
	FieldFinishDate         = "Microsoft.VSTS.Scheduling.FinishDate"
	FieldTargetDate         = "Microsoft.VSTS.Scheduling.TargetDate"
	FieldActualStartDate    = "Microsoft.VSTS.Scheduling.ActualStartDate"
	FieldActualEndDate      = "Microsoft.VSTS.Scheduling.ActualEndDate"
	FieldOriginalEstimate   = "Microsoft.VSTS.Scheduling.OriginalEstimate"
	FieldRemainingWork      = "Microsoft.VSTS.Scheduling.RemainingWork"
	FieldCompletedWork      = "Microsoft.VSTS.Scheduling.CompletedWork"
	FieldQAReadyDate        = "Custom.QAReadyDate"
)

// WorkItem is a single Azure DevOps work item as returned by the REST API.
// Fields holds the raw field map; values are numbers, strings, ISO-8601
// date-time strings, or identity objects depending on the field.
type WorkItem struct {
	ID     int
	Type   WorkItemType
	Title  string
	State  string
	URL    string
	Fields map[string]any
}

// StringField returns the field value as a string, or "" when absent.
// Identity objects (assignee fields) resolve to their uniqueName or
// displayName.
func (w *WorkItem) StringField(ref string) string {
	if w == nil || w.Fields == nil {
		return ""
	}
	switch v := w.Fields[ref].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case map[string]any:
		if s, ok := v["uniqueName"].(string); ok && s != "" {
			return s
		}
		if s, ok := v["displayName"].(string); ok {
			return s
		}
	}
	return ""
}

// NumberField returns the field value as a float64, or 0 when absent or
// not numeric. JSON decoding yields float64 for all numbers.
func (w *WorkItem) NumberField(ref string) float64 {
	if w == nil || w.Fields == nil {
		return 0
	}
	switch v := w.Fields[ref].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

// DateField parses the field value as a date-time. The second return is
// false when the field is absent or unparsable.
func (w *WorkItem) DateField(ref string) (time.Time, bool) {
	if w == nil || w.Fields == nil {
		return time.Time{}, false
	}
	return ParseDate(w.Fields[ref])
}

// dateLayouts covers the formats Azure DevOps emits plus plain dates
// entered by hand.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses a raw field value as a date-time.
func ParseDate(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
