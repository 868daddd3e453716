// Package model contains domain models passed between layers.
package model

import "strconv"

// Unknown is the sentinel for attributes the directory could not supply
// (missing birth date, no supervisor on record, and so on).
const Unknown = "-"

// Employee is a guessable subject for one day's puzzle. Instances are
// immutable once the catalog snapshot is built.
type Employee struct {
	ID         string   // stable directory identifier, unique per day
	Name       string   // display name shown to the player
	FirstName  string
	Surname    string
	AvatarURL  string
	Department string   // single-valued, Unknown when missing
	Office     string   // single-valued, Unknown when missing
	Teams      []string // team memberships, may be empty
	Age        string   // decimal years or Unknown
	Supervisor string   // supervisor display name or Unknown
}

// AgeYears parses the numeric age attribute. The second return is false
// when the age is the Unknown sentinel or otherwise unparseable, in which
// case no directional comparison is defined.
func (e Employee) AgeYears() (int, bool) {
	if e.Age == Unknown || e.Age == "" {
		return 0, false
	}
	n, err := strconv.Atoi(e.Age)
	if err != nil {
		return 0, false
	}
	return n, true
}
