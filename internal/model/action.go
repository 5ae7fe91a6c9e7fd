package model

import "github.com/mj1618/sysprefs-cli/internal/sysprefs"

// Act runs a state-changing call and reports what it changed. The
// observable state is read before and after; if either read fails the
// result carries no changes rather than failing the action.
func Act(app *sysprefs.Application, action string, fn func() (sysprefs.Reference, error)) (Result, error) {
	before, beforeErr := ReadState(app)
	ref, err := fn()
	if err != nil {
		return Result{}, err
	}
	result := Result{OK: true, Action: action, Reference: string(ref)}
	if beforeErr != nil {
		return result, nil
	}
	if after, err := ReadState(app); err == nil {
		result.Changes = Diff(before, after)
	}
	return result, nil
}
