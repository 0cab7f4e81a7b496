// Package ident generates the record identifiers used across the capture
// tables. Formats are part of the external interface and must stay stable:
// timestamped prefixes for studies, notes, observations and findings, and a
// study-scoped compound for participants.
package ident

import (
	"fmt"
	"time"
)

const (
	StudyPrefix       = "STD"
	NotePrefix        = "NOTE"
	ObservationPrefix = "OBS"
	FindingPrefix     = "FND"
)

// New returns "<PREFIX>_<yyyymmddhhmmss>". Collisions within the same second
// are not detected; the insert surfaces the key violation instead.
func New(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s", prefix, now.Format("20060102150405"))
}

// Participant returns "PART_<study id>_<participant number>". Uniqueness
// rests entirely on the per-study number the coordinator supplies.
func Participant(studyID, number string) string {
	return fmt.Sprintf("PART_%s_%s", studyID, number)
}
