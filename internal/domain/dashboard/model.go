package dashboard

import "time"

// Metrics are the four headline counts. The note and finding counts cover
// the last seven days.
type Metrics struct {
	ActiveStudies      int `json:"active_studies"`
	ActiveParticipants int `json:"active_participants"`
	RecentNotes        int `json:"recent_notes"`
	RecentFindings     int `json:"recent_findings"`
}

// RecentNote is a row of the latest-notes feed.
type RecentNote struct {
	NoteTitle   string    `json:"note_title"`
	StudyName   string    `json:"study_name"`
	NoteType    string    `json:"note_type"`
	CreatedDate time.Time `json:"created_date"`
}

// RecentFinding is a row of the latest-findings feed.
type RecentFinding struct {
	FindingType string    `json:"finding_type"`
	StudyName   string    `json:"study_name"`
	Severity    string    `json:"severity"`
	CreatedDate time.Time `json:"created_date"`
}
