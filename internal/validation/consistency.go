package validation

import (
	"fmt"
	"math"
	"time"

	"sprintsense/internal/domain"
)

// floorDate is the minimum plausible date. Anything earlier is treated as
// a placeholder sentinel (e.g. 1899-12-30 from spreadsheet exports).
var floorDate = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// workTolerance is the float tolerance for the original = remaining +
// completed invariant.
const workTolerance = 0.01

// Findings is the output of the consistency checker: invalid field labels
// deduplicated in first-seen order, reason messages in check order, and an
// optional timeline warning that does not block completeness.
type Findings struct {
	Labels          []string
	Messages        []string
	TimelineWarning string
}

type findingSet struct {
	out  *Findings
	seen map[string]bool
}

func (s *findingSet) flag(label, msg string) {
	if !s.seen[label] {
		s.seen[label] = true
		s.out.Labels = append(s.out.Labels, label)
	}
	if msg != "" {
		s.out.Messages = append(s.out.Messages, msg)
	}
}

// CheckConsistency evaluates fields that passed completeness for
// individually invalid values and mutual contradictions.
func CheckConsistency(item *domain.WorkItem, rules []Rule) Findings {
	var out Findings
	set := &findingSet{out: &out, seen: map[string]bool{}}
	if item == nil {
		return out
	}

	// Labels whose values parsed as plausible dates, for ordering checks.
	dates := map[string]time.Time{}

	for _, r := range rules {
		if !r.IsDate || fieldMissing(item, r) {
			continue
		}
		t, ok := domain.ParseDate(item.Fields[r.FieldRef])
		if !ok {
			set.flag(r.Label, fmt.Sprintf("%s has invalid date format", r.Label))
			continue
		}
		if t.Before(floorDate) {
			set.flag(r.Label, fmt.Sprintf("%s (%s is invalid - before %s)",
				r.Label, item.StringField(r.FieldRef), floorDate.Format("2006-01-02")))
			continue
		}
		dates[r.Label] = t
	}

	switch item.Type {
	case domain.TypeUserStory:
		checkStoryDates(set, dates)
	case domain.TypeTask:
		checkTaskDates(set, dates)
		checkWorkTracking(set, item)
	}

	if item.Type != domain.TypeTask {
		checkRemainingVsOriginal(set, item)
	}

	return out
}

func checkStoryDates(set *findingSet, dates map[string]time.Time) {
	start, hasStart := dates[LabelPlannedStartDate]
	end, hasEnd := dates[LabelPlannedEndDate]
	windowKnown := hasStart && hasEnd
	sameDayWindow := windowKnown && sameDay(start, end)

	if windowKnown {
		if sameDayWindow {
			// An end date equal to the start date usually means nobody
			// computed it; the synthesizer should derive it from effort.
			set.flag(LabelPlannedEndDate,
				fmt.Sprintf("%s needs adjustment based on task estimates", LabelPlannedEndDate))
		} else if end.Before(start) {
			set.flag(LabelPlannedEndDate,
				fmt.Sprintf("%s must be after %s", LabelPlannedEndDate, LabelPlannedStartDate))
		}
	}

	if qa, ok := dates[LabelQAReadyDate]; ok && windowKnown {
		if sameDayWindow {
			set.flag(LabelQAReadyDate,
				fmt.Sprintf("%s needs adjustment based on task estimates", LabelQAReadyDate))
			set.flag(LabelPlannedEndDate, "")
		} else if qa.Before(start) || qa.After(end) {
			set.flag(LabelQAReadyDate,
				fmt.Sprintf("%s must fall between %s and %s",
					LabelQAReadyDate, LabelPlannedStartDate, LabelPlannedEndDate))
		}
	}

	if actual, ok := dates[LabelActualStartDate]; ok && hasStart {
		if actual.Before(start.AddDate(0, 0, -7)) {
			set.flag(LabelActualStartDate,
				fmt.Sprintf("%s is more than 7 days before %s",
					LabelActualStartDate, LabelPlannedStartDate))
		}
	}

	// A late actual end records what happened; it is reported but never
	// queued for fixing.
	if actual, ok := dates[LabelActualEndDate]; ok && hasEnd && actual.After(end) {
		set.out.TimelineWarning = fmt.Sprintf("%s (%s) is after %s (%s)",
			LabelActualEndDate, actual.Format("2006-01-02"),
			LabelPlannedEndDate, end.Format("2006-01-02"))
	}
}

func checkTaskDates(set *findingSet, dates map[string]time.Time) {
	start, hasStart := dates[LabelStartDate]
	finish, hasFinish := dates[LabelFinishDate]
	if hasStart && hasFinish && finish.Before(start) {
		set.flag(LabelFinishDate,
			fmt.Sprintf("%s cannot be before %s", LabelFinishDate, LabelStartDate))
	}
}

func checkWorkTracking(set *findingSet, item *domain.WorkItem) {
	orig := item.NumberField(domain.FieldOriginalEstimate)
	rem := item.NumberField(domain.FieldRemainingWork)
	comp := item.NumberField(domain.FieldCompletedWork)

	anyKnown := orig > 0 || rem > 0 || comp > 0
	if anyKnown && math.Abs(orig-(rem+comp)) > workTolerance {
		msg := fmt.Sprintf("work tracking mismatch: %s (%.4g) != %s (%.4g) + %s (%.4g)",
			LabelOriginalEstimate, orig, LabelRemainingWork, rem, LabelCompletedWork, comp)
		// Flag the one field to recompute, keeping the two known values.
		switch {
		case orig > 0 && rem > 0:
			set.flag(LabelCompletedWork, msg)
		case orig > 0 && comp > 0:
			set.flag(LabelRemainingWork, msg)
		case rem > 0 && comp > 0:
			set.flag(LabelOriginalEstimate, msg)
		default:
			set.flag(LabelOriginalEstimate, msg)
			set.flag(LabelRemainingWork, "")
			set.flag(LabelCompletedWork, "")
		}
	}

	if orig > 0 && rem > orig+workTolerance {
		set.flag(LabelRemainingWork, fmt.Sprintf("%s (%.4g) exceeds %s (%.4g)",
			LabelRemainingWork, rem, LabelOriginalEstimate, orig))
	}
}

// checkRemainingVsOriginal covers non-Task items that still carry the
// scheduling pair.
func checkRemainingVsOriginal(set *findingSet, item *domain.WorkItem) {
	orig := item.NumberField(domain.FieldOriginalEstimate)
	rem := item.NumberField(domain.FieldRemainingWork)
	if orig > 0 && rem > orig+workTolerance {
		set.flag(LabelRemainingWork, fmt.Sprintf("%s (%.4g) exceeds %s (%.4g)",
			LabelRemainingWork, rem, LabelOriginalEstimate, orig))
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
