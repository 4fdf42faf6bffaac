package validation

import (
	"math"
	"strings"
	"time"

	"sprintsense/internal/domain"
)

// productiveHoursPerDay converts effort hours to working days.
const productiveHoursPerDay = 6.0

// hoursPerStoryPoint converts story points to effort hours.
const hoursPerStoryPoint = 8.0

// EstimateFunc guesses task hours from a title when no work-tracking data
// exists at all.
type EstimateFunc func(title string) float64

// DefaultEstimate is a keyword heuristic: titles that read complex scale
// the estimate up, trivial ones scale it down, everything else gets 4h.
func DefaultEstimate(title string) float64 {
	t := strings.ToLower(title)
	switch {
	case containsAny(t, "complex", "integration", "migration", "refactor", "architecture"):
		return 8
	case containsAny(t, "simple", "minor", "typo", "cleanup", "small fix"):
		return 2
	default:
		return 4
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Context carries the data the synthesizer may draw on. Now is supplied by
// the caller so synthesis stays deterministic.
type Context struct {
	Now          time.Time
	PlannedStart *time.Time
	PlannedEnd   *time.Time
	StoryPoints  float64 // story points or effort, per item type
	Original     float64
	Remaining    float64
	Completed    float64
	Title        string
	Estimate     EstimateFunc // nil uses DefaultEstimate
}

// FieldValue is one fix-plan entry: an API field reference and the value
// to write, ready for a JSON-Patch add operation.
type FieldValue struct {
	FieldRef string
	Value    any
}

// SynthesizeDefaults computes a replacement value for each fixable field,
// ordered by the type's rule table. Labels with no mapping for the type or
// no computable value are silently skipped.
func SynthesizeDefaults(fieldsToFix []string, t domain.WorkItemType, ctx Context) []FieldValue {
	if len(fieldsToFix) == 0 {
		return nil
	}
	fix := make(map[string]bool, len(fieldsToFix))
	for _, label := range fieldsToFix {
		fix[label] = true
	}

	now := ctx.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	start := now
	if ctx.PlannedStart != nil {
		start = *ctx.PlannedStart
	}

	// Moving the start without a usable stored end means the end must move
	// with it; queue the end label so the plan rewrites both window edges.
	if ctx.PlannedEnd == nil && fix[startLabelFor(t)] && !fix[endLabelFor(t)] {
		fix[endLabelFor(t)] = true
	}

	// Resolve the work-tracking triple once; Finish Date synthesis depends
	// on the resolved original estimate.
	orig, rem, comp := resolveWorkTracking(ctx)

	// Effective end of the planned window: the stored value, or the end we
	// are about to synthesize when it is itself a fix target.
	end := ctx.PlannedEnd
	if fix[LabelPlannedEndDate] || end == nil {
		e := synthesizeEndDate(start, ctx.StoryPoints)
		end = &e
	}

	var plan []FieldValue
	add := func(label string, v any) {
		ref := fieldRefFor(t, label)
		if ref == "" || v == nil {
			return
		}
		plan = append(plan, FieldValue{FieldRef: ref, Value: v})
	}

	for _, r := range RulesFor(t) {
		if !fix[r.Label] {
			continue
		}
		switch r.Label {
		case LabelPriority:
			add(r.Label, domain.PriorityHigh)
		case LabelRisk:
			add(r.Label, "2 - Medium")
		case LabelEffort:
			add(r.Label, 8)
		case LabelBusinessValue, LabelTimeCriticality:
			add(r.Label, 50)
		case LabelStartDate, LabelPlannedStartDate:
			add(r.Label, isoDate(start))
		case LabelTargetDate:
			add(r.Label, isoDate(now.AddDate(0, 0, 14)))
		case LabelPlannedEndDate:
			add(r.Label, isoDate(*end))
		case LabelStoryPoints:
			add(r.Label, 3)
		case LabelQAReadyDate:
			qa := end.AddDate(0, 0, -2)
			if qa.Before(start) {
				qa = start
			}
			add(r.Label, isoDate(qa))
		case LabelFinishDate:
			days := ceilDiv(orig, productiveHoursPerDay) - 1
			if days < 0 {
				days = 0
			}
			add(r.Label, isoDate(start.AddDate(0, 0, days)))
		case LabelActualStartDate:
			add(r.Label, isoDate(start))
		case LabelActualEndDate:
			add(r.Label, isoDate(*end))
		case LabelActivity:
			add(r.Label, domain.DefaultActivity)
		case LabelOriginalEstimate:
			add(r.Label, orig)
		case LabelRemainingWork:
			add(r.Label, rem)
		case LabelCompletedWork:
			add(r.Label, comp)
		}
	}

	return plan
}

// synthesizeEndDate derives a planned end from story points at 8h per
// point and 6 productive hours per day, or a one-week default.
func synthesizeEndDate(start time.Time, points float64) time.Time {
	if points > 0 {
		return start.AddDate(0, 0, ceilDiv(points*hoursPerStoryPoint, productiveHoursPerDay)-1)
	}
	return start.AddDate(0, 0, 7)
}

// resolveWorkTracking completes the (original, remaining, completed)
// triple so that original = remaining + completed, keeping the two known
// values where possible. When nothing is known the estimate heuristic
// seeds a fresh triple.
func resolveWorkTracking(ctx Context) (orig, rem, comp float64) {
	orig, rem, comp = ctx.Original, ctx.Remaining, ctx.Completed

	switch {
	case orig > 0 && rem > 0 && rem <= orig+workTolerance:
		comp = round2(orig - rem)
	case orig > 0 && comp > 0 && comp <= orig+workTolerance:
		rem = round2(orig - comp)
	case rem > 0 && comp > 0:
		orig = round2(rem + comp)
	case orig > 0 && comp > orig:
		// Logged work exceeds the estimate; the estimate was wrong.
		orig = comp
		rem = 0
	case orig > 0:
		rem = orig
		comp = 0
	case rem > 0:
		orig = rem
		comp = 0
	case comp > 0:
		orig = comp
		rem = 0
	default:
		estimate := ctx.Estimate
		if estimate == nil {
			estimate = DefaultEstimate
		}
		orig = estimate(ctx.Title)
		rem = orig
		comp = 0
	}
	return orig, rem, comp
}

func ceilDiv(hours, perDay float64) int {
	return int(math.Ceil(hours / perDay))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func isoDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
