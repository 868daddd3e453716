// Package pick derives the employee of the day from a catalog snapshot.
//
// Selection is a pure function of (roster, date): every process that sees
// the same ID-sorted roster on the same calendar day resolves the same
// target, without persisting a puzzle-of-the-day record anywhere.
package pick

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"sort"
	"time"

	"github.com/kollega-game/kollega/internal/domain/model"
)

// DateKey returns the calendar day in YYYY-MM-DD form.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// index maps a date key onto a roster slot via HMAC(salt, key) mod size.
// The HMAC keeps the sequence unpredictable to players who know the roster.
func index(dateKey, salt string, size int) int {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(dateKey))
	sum := h.Sum(nil)
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(size))
}

// Target selects the day's hidden employee from roster. The roster is
// re-sorted by ID so that provider ordering drift between fetches cannot
// change which slot a date resolves to. Returns ErrNoEmployees when the
// roster is empty.
func Target(roster []model.Employee, date time.Time, salt string) (model.Employee, error) {
	if len(roster) == 0 {
		return model.Employee{}, ErrNoEmployees
	}
	sorted := make([]model.Employee, len(roster))
	copy(sorted, roster)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return sorted[index(DateKey(date), salt, len(sorted))], nil
}
