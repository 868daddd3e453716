package catalog

import (
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/kollega-game/kollega/internal/domain/model"
)

// The directory API wraps every attribute of a user detail in a
// value/editable envelope. These closed shapes are the only place the wire
// format exists; everything past mapUser works on model.Employee.

type valueField[T any] struct {
	Value T `json:"value"`
}

type apiTeam struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type apiLocation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type apiImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type apiSupervisor struct {
	ID            string `json:"id"`
	GivenName     string `json:"givenName"`
	FamilyName    string `json:"familyName"`
	PreferredName string `json:"preferredName"`
}

// apiUser mirrors the directory's user detail response.
type apiUser struct {
	ID            string                     `json:"id"`
	GivenName     valueField[string]         `json:"givenName"`
	FamilyName    valueField[string]         `json:"familyName"`
	PreferredName valueField[string]         `json:"preferredName"`
	AvatarURL     valueField[string]         `json:"avatarUrl"`
	AvatarImage   valueField[*apiImage]      `json:"avatarImage"`
	BirthDate     valueField[string]         `json:"birthDate"` // YYYY-MM-DD
	Teams         valueField[[]apiTeam]      `json:"teams"`
	Locations     valueField[[]apiLocation]  `json:"locations"`
	Supervisor    valueField[*apiSupervisor] `json:"supervisor"`
}

// apiListItem mirrors the directory's paged list response items. Only the
// fields the sync needs are decoded.
type apiListItem struct {
	ID     string `json:"id"`
	Status *struct {
		Active bool `json:"active"`
	} `json:"status"`
}

type apiListResponse struct {
	Total int           `json:"total"`
	Items []apiListItem `json:"items"`
}

// mapUser converts a directory user into an Employee, applying all the
// missing-field fallbacks in one place: department is the first team,
// office the first location, and anything absent becomes model.Unknown.
// The reference date fixes age calculation so a roster mapped for a given
// day is stable no matter when the mapping runs.
func mapUser(u apiUser, reference time.Time) model.Employee {
	name := u.PreferredName.Value
	if name == "" {
		name = u.GivenName.Value + " " + u.FamilyName.Value
	}

	avatar := u.AvatarURL.Value
	if img := u.AvatarImage.Value; img != nil && img.URL != "" {
		avatar = img.URL
	}

	teams := lo.Map(u.Teams.Value, func(t apiTeam, _ int) string { return t.Name })

	department := model.Unknown
	if len(u.Teams.Value) > 0 {
		department = u.Teams.Value[0].Name
	}

	office := model.Unknown
	if len(u.Locations.Value) > 0 {
		office = u.Locations.Value[0].Name
	}

	supervisor := model.Unknown
	if sup := u.Supervisor.Value; sup != nil {
		supervisor = sup.PreferredName
		if supervisor == "" {
			supervisor = sup.GivenName + " " + sup.FamilyName
		}
	}

	return model.Employee{
		ID:         u.ID,
		Name:       name,
		FirstName:  u.GivenName.Value,
		Surname:    u.FamilyName.Value,
		AvatarURL:  avatar,
		Department: department,
		Office:     office,
		Teams:      teams,
		Age:        ageFromBirthDate(u.BirthDate.Value, reference),
		Supervisor: supervisor,
	}
}

// ageFromBirthDate renders whole years at the reference date, or the
// unknown sentinel when the birth date is absent or malformed.
func ageFromBirthDate(birthDate string, reference time.Time) string {
	if birthDate == "" {
		return model.Unknown
	}
	born, err := time.Parse("2006-01-02", birthDate)
	if err != nil {
		return model.Unknown
	}
	years := reference.Year() - born.Year()
	anniversary := time.Date(reference.Year(), born.Month(), born.Day(), 0, 0, 0, 0, reference.Location())
	if reference.Before(anniversary) {
		years--
	}
	if years < 0 {
		return model.Unknown
	}
	return strconv.Itoa(years)
}
