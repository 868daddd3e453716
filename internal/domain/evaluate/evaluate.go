// Package evaluate compares a guessed employee against the day's target and
// produces the per-attribute hints shown to the player.
//
// This package is the single source of truth for hint results: the
// presentation layer renders what it gets and never recomputes comparisons.
package evaluate

import (
	"strings"

	"github.com/samber/lo"

	"github.com/kollega-game/kollega/internal/domain/model"
)

// Evaluate builds the full hint row for one guess. Exactly one hint is
// produced per attribute kind, in the order model.HintKinds reports. The
// rendered values are always the guessed employee's attributes.
func Evaluate(target, guess model.Employee) model.Guess {
	hints := []model.Hint{
		{Kind: model.HintDepartment, Value: guess.Department, Result: compareSingle(target.Department, guess.Department)},
		{Kind: model.HintOffice, Value: guess.Office, Result: compareSingle(target.Office, guess.Office)},
		{Kind: model.HintTeams, Value: renderTeams(guess.Teams), Result: compareTeams(target.Teams, guess.Teams)},
		{Kind: model.HintAge, Value: guess.Age, Result: compareAge(target, guess)},
		{Kind: model.HintSupervisor, Value: guess.Supervisor, Result: compareSingle(target.Supervisor, guess.Supervisor)},
	}

	return model.Guess{
		EmployeeID:   guess.ID,
		EmployeeName: guess.Name,
		AvatarURL:    guess.AvatarURL,
		Hints:        hints,
		IsCorrect:    guess.ID == target.ID,
	}
}

// compareSingle handles single-valued categorical attributes. Comparison is
// case-sensitive on the stored canonical form.
func compareSingle(target, guess string) model.HintResult {
	if target == guess {
		return model.ResultCorrect
	}
	return model.ResultIncorrect
}

// compareTeams handles the multi-valued attribute. Equal sets are correct,
// a non-empty intersection of unequal sets is a partial overlap, and
// disjoint or empty sets are incorrect.
func compareTeams(target, guess []string) model.HintResult {
	if len(target) == 0 || len(guess) == 0 {
		return model.ResultIncorrect
	}
	shared := lo.Intersect(lo.Uniq(target), lo.Uniq(guess))
	switch {
	case len(shared) == 0:
		return model.ResultIncorrect
	case len(shared) == len(lo.Uniq(target)) && len(shared) == len(lo.Uniq(guess)):
		return model.ResultCorrect
	default:
		return model.ResultPartial
	}
}

// compareAge handles the numeric attribute. Direction is target-relative:
// higher means the target is older than the guess. An unknown age on either
// side yields incorrect since no direction is defined.
func compareAge(target, guess model.Employee) model.HintResult {
	t, tok := target.AgeYears()
	g, gok := guess.AgeYears()
	if !tok || !gok {
		return model.ResultIncorrect
	}
	switch {
	case t == g:
		return model.ResultCorrect
	case t > g:
		return model.ResultHigher
	default:
		return model.ResultLower
	}
}

func renderTeams(teams []string) string {
	return strings.Join(teams, ", ")
}
