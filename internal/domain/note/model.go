package note

import "time"

// Note is a free-text research note attached to a study.
type Note struct {
	NoteID       string    `json:"note_id"`
	StudyID      string    `json:"study_id"`
	NoteType     string    `json:"note_type"`
	NoteTitle    string    `json:"note_title"`
	NoteText     string    `json:"note_text"`
	NotePriority string    `json:"note_priority"`
	NoteDate     time.Time `json:"note_date"`
	CreatedBy    string    `json:"created_by"`
	CreatedDate  time.Time `json:"created_date"`
}

// SearchResult is a note joined with its study's name for display.
type SearchResult struct {
	Note
	StudyName string `json:"study_name"`
}
