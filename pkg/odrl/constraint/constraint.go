package constraint

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/odrlcore/odrlengine/pkg/odrl/operator"
	"github.com/odrlcore/odrlengine/pkg/odrl/value"
	"github.com/odrlcore/odrlengine/pkg/odrlerr"
)

// Window is the sliding-window descriptor attached to a timeWindow
// constraint: at most Count events within Duration.
type Window struct {
	Count    int
	Duration time.Duration
}

// Evaluable is implemented by both Constraint and LogicConstraint so the
// evaluator, rule refinements, and nested logic constraints can treat them
// uniformly (spec.md §4.3: "A LogicConstraint delegates to 4.2").
type Evaluable interface {
	Evaluate(ctx context.Context, w World) (bool, error)
}

// Constraint is an atomic ODRL constraint (spec.md §3).
type Constraint struct {
	UID         string
	LeftOperand LeftOperand
	Operator    operator.Operator
	Right       RightOperand
	DataType    value.DataType
	Unit        string
	// Status is the fallback literal compared against the right operand
	// when left-operand resolution fails (spec.md §4.2, §4.3, §7).
	Status *string
	// Window is non-nil only when LeftOperand == TimeWindow.
	Window *Window
}

// Evaluate resolves the left operand, resolves the right operand, and
// applies the operator, per spec.md §4.3. Failures are returned as errors
// classified in pkg/odrlerr; callers at the engine boundary (spec.md §4.3,
// §7) are responsible for folding them into false rather than propagating.
func (c *Constraint) Evaluate(ctx context.Context, w World) (bool, error) {
	if c.Operator == "" {
		return false, odrlerr.New(odrlerr.KindMissingOperator, "constraint has no operator").WithSubject(c.UID)
	}
	if c.LeftOperand == "" {
		return false, odrlerr.New(odrlerr.KindMissingLeftOperand, "constraint has no left operand").WithSubject(c.UID)
	}

	left, err := c.resolveLeft(w)
	if err != nil {
		return c.fallbackBool(w, err)
	}

	right, err := c.Right.resolve(w)
	if err != nil {
		return c.fallbackBool(w, err)
	}

	result, err := c.applyOperator(left, right)
	if err != nil {
		return c.fallbackBool(w, err)
	}
	return result, nil
}

// resolveLeft resolves the left operand, reading from the world's clocks
// for the five specials and the window counter for timeWindow, or looking
// the left-operand name up directly in the state world's state map
// otherwise.
func (c *Constraint) resolveLeft(w World) (value.Value, error) {
	switch c.LeftOperand {
	case DateTime:
		return value.Scalar(formatMillis(w.NowMillis())), nil
	case ElapsedTime:
		return value.Scalar(strconv.FormatInt(w.NowMillis()-w.WorldInitialTimeMillis(), 10)), nil
	case TimeInterval:
		return value.Scalar(strconv.FormatInt(w.NowMillis()-w.LastExecuteTimeMillis(), 10)), nil
	case MeteredTime:
		return value.Scalar(strconv.FormatInt(w.MeteredTimeMillis(), 10)), nil
	case TimeWindow:
		return c.resolveWindow(w)
	default:
		v, ok := w.Resolve(c.LeftOperand)
		if !ok {
			return value.Value{}, odrlerr.New(odrlerr.KindResolution, "left operand could not be resolved").WithSubject(string(c.LeftOperand))
		}
		return v, nil
	}
}

// resolveWindow implements calc_slide_window (spec.md §4.3): evicts stale
// entries and returns whether the remainder is positive, as a boolean
// literal so the eq/neq comparison against "true" in applyOperator can
// proceed uniformly with every other constraint. On success, it registers
// a callback to append the current event timestamp (spec.md §4.3: "on
// successful outer evaluation it appends the current timestamp ... on
// failure it does nothing").
func (c *Constraint) resolveWindow(w World) (value.Value, error) {
	if c.Window == nil {
		return value.Value{}, odrlerr.New(odrlerr.KindMissingLeftOperand, "timeWindow constraint has no window descriptor").WithSubject(c.UID)
	}
	now := w.NowMillis()
	remaining := w.WindowRemaining(c.UID, c.Window.Duration, c.Window.Count, now)
	permits := remaining > 0
	if permits {
		uid := c.UID
		w.OnSuccess(func() {
			if recorder, ok := w.(WindowRecorder); ok {
				recorder.RecordWindowEvent(uid, now)
			}
		})
	}
	return value.Scalar(strconv.FormatBool(permits)), nil
}

// applyOperator dispatches to the comparison or set operator family based
// on the constraint's declared operator.
func (c *Constraint) applyOperator(left, right value.Value) (bool, error) {
	switch c.Operator {
	case operator.Eq, operator.Neq, operator.Gt, operator.Gteq, operator.Lt, operator.Lteq:
		dt := c.DataType
		if dt == "" {
			dt = value.String
		}
		if c.LeftOperand == TimeWindow {
			dt = value.Boolean
		}
		return operator.Compare(c.Operator, left, right, dt)
	case operator.IsA, operator.HasPart, operator.IsPartOf, operator.IsAllOf, operator.IsAnyOf, operator.IsNoneOf:
		return operator.SetOp(c.Operator, left, right)
	default:
		return false, odrlerr.New(odrlerr.KindUnsupportedOperatorForType, "unrecognized operator").WithSubject(string(c.Operator))
	}
}

// fallbackBool applies the status fallback and always returns a bool
// result alongside the (possibly nil) error: when Status is set, a failed
// left-operand resolution is downgraded to comparing Status against the
// right operand; any other error, or a failure with no Status, yields
// false with the original error so the engine boundary can log it under
// verbose mode without raising.
func (c *Constraint) fallbackBool(w World, err error) (bool, error) {
	if c.Status == nil || !odrlerr.IsKind(err, odrlerr.KindResolution) {
		return false, err
	}
	right, rerr := c.Right.resolve(w)
	if rerr != nil {
		return false, err
	}
	result, operr := c.applyOperator(value.Scalar(*c.Status), right)
	if operr != nil {
		return false, err
	}
	return result, nil
}

func missingRightOperand(subject string) error {
	return odrlerr.New(odrlerr.KindMissingRightOperand, "right operand reference could not be resolved").WithSubject(subject)
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

// LogicConstraint composes Evaluables under and/or/xone/andSequence
// (spec.md §3, §4.2). andSequence's operands are evaluated strictly in
// declaration order, preserving any side effects (via world state) later
// operands may depend on; the other operators may be evaluated in any
// order but here are evaluated left-to-right for determinism, since
// nothing in spec.md requires reordering and sequential evaluation is
// always a valid schedule.
type LogicConstraint struct {
	UID      string
	Operator operator.Operator
	Operands []Evaluable
}

// Evaluate evaluates every operand and combines the results per spec.md
// §4.2's truth tables.
func (l *LogicConstraint) Evaluate(ctx context.Context, w World) (bool, error) {
	results := make([]bool, 0, len(l.Operands))
	for _, op := range l.Operands {
		r, err := op.Evaluate(ctx, w)
		if err != nil {
			// Errors do not short-circuit (spec.md §4.3): a failing
			// operand is treated as false.
			r = false
		}
		results = append(results, r)
	}
	return operator.Combine(l.Operator, results)
}

// Infer reports whether every element of constraints evaluates true,
// per spec.md §4.3 ("ConstraintInference.infer"). A failing error is
// treated identically to false: errors do not short-circuit the policy,
// they mask the offending constraint.
func Infer(ctx context.Context, w World, constraints []Evaluable) bool {
	for _, c := range constraints {
		ok, err := c.Evaluate(ctx, w)
		if err != nil || !ok {
			return false
		}
	}
	return true
}

var iso8601Duration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseISO8601Duration parses the small subset of ISO 8601 durations ODRL
// timeWindow descriptors use (e.g. "PT1S", "P1D", "PT3H30M").
func ParseISO8601Duration(s string) (time.Duration, error) {
	m := iso8601Duration.FindStringSubmatch(s)
	if m == nil {
		return 0, odrlerr.New(odrlerr.KindParse, "not a valid ISO 8601 duration").WithSubject(s)
	}
	var d time.Duration
	if m[1] != "" {
		days, _ := strconv.Atoi(m[1])
		d += time.Duration(days) * 24 * time.Hour
	}
	if m[2] != "" {
		hours, _ := strconv.Atoi(m[2])
		d += time.Duration(hours) * time.Hour
	}
	if m[3] != "" {
		mins, _ := strconv.Atoi(m[3])
		d += time.Duration(mins) * time.Minute
	}
	if m[4] != "" {
		secs, _ := strconv.Atoi(m[4])
		d += time.Duration(secs) * time.Second
	}
	return d, nil
}

// ParseSlide parses the "count/duration" form ("3/PT1S") used to declare a
// timeWindow constraint's descriptor.
func ParseSlide(s string) (Window, error) {
	countStr, durStr, ok := strings.Cut(s, "/")
	if !ok {
		return Window{}, odrlerr.New(odrlerr.KindParse, "not a valid slide descriptor").WithSubject(s)
	}
	count, err := strconv.Atoi(countStr)
	if err != nil {
		return Window{}, odrlerr.Wrap(odrlerr.KindParse, "slide count is not an integer", err).WithSubject(s)
	}
	dur, err := ParseISO8601Duration(durStr)
	if err != nil {
		return Window{}, err
	}
	return Window{Count: count, Duration: dur}, nil
}
