// Copyright (c) 2026 marsAI. All rights reserved.

package submission

import (
	"time"

	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/validate"
)

// # Navigation State Machine

// Navigation is the outcome of a step transition. ScrollToTop tells the
// client to reset its viewport, which happens whenever the step changed.
type Navigation struct {
	Step        int  `json:"step"`
	Moved       bool `json:"moved"`
	ScrollToTop bool `json:"scroll_to_top"`
}

func (draft *Draft) moveTo(step int) Navigation {
	moved := step != draft.Step
	draft.Step = step
	return Navigation{Step: step, Moved: moved, ScrollToTop: moved}
}

/*
Advance moves to the next step when the current one validates.

Description: At the last step the position is clamped and nothing changes.
An invalid current step leaves the draft untouched.

Returns:
  - Navigation: The resulting position
  - error: apperr STEP_INVALID carrying the current step's field errors
*/
func (draft *Draft) Advance(now time.Time) (Navigation, error) {
	if errs := ValidateStep(draft.Step, draft, now); len(errs) > 0 {
		return Navigation{Step: draft.Step}, apperr.StepInvalid(draft.Step, errs...)
	}
	return draft.moveTo(min(draft.Step+1, LastStep)), nil
}

// Retreat moves to the previous step. It is a no-op at step 1.
func (draft *Draft) Retreat() Navigation {
	if draft.Step <= FirstStep {
		return Navigation{Step: draft.Step}
	}
	return draft.moveTo(draft.Step - 1)
}

/*
GoTo jumps directly to target.

Description: Going back is always allowed. Going forward requires every
step before target to validate; otherwise the draft stays where it is and
the error names the first step that blocks the jump.
*/
func (draft *Draft) GoTo(target int, now time.Time) (Navigation, error) {
	if target < FirstStep || target > LastStep {
		return Navigation{Step: draft.Step}, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   "step",
			Rule:    validate.RuleRange,
			Message: "Must be between 1 and 5",
			Key:     "Must be between %d and %d",
			Args:    []any{FirstStep, LastStep},
		})
	}

	if target > draft.Step {
		if step, errs := FirstInvalidStep(draft, now, target); step != 0 {
			return Navigation{Step: draft.Step}, apperr.StepInvalid(step, errs...)
		}
	}

	return draft.moveTo(target), nil
}

/*
CheckSubmittable is the final cross-step re-validation.

Description: Submission is only possible from the last step, and only if
steps 1 to 4 all validate. When one of them fails the draft is routed back
to the first failing step so the user lands on the offending fields; the
caller must persist that new position.

Returns:
  - Navigation: Set when the draft was routed back
  - error: UNPROCESSABLE outside the last step, STEP_INVALID on a failing step
*/
func (draft *Draft) CheckSubmittable(now time.Time) (Navigation, error) {
	if draft.Step != LastStep {
		return Navigation{Step: draft.Step}, apperr.Unprocessable("Submission is only possible from the last step")
	}

	step, errs := FirstInvalidStep(draft, now, LastStep)
	if step == 0 {
		return Navigation{Step: draft.Step}, nil
	}

	return draft.moveTo(step), apperr.StepInvalid(step, errs...)
}
