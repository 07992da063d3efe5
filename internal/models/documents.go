package models

import "time"

// ScheduleActivity is one entry in a project's schedule, stored inside a JSONB
// document. ID is assigned when the schedule is stored so evidence can be
// attached to an activity even after the list is reordered.
type ScheduleActivity struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	TrackingNotes string     `json:"tracking_notes"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	Status        string     `json:"status"`
	EvidenceURLs  []string   `json:"evidence_urls"`
}

type Attachment struct {
	Description string `json:"description"`
	FileURL     string `json:"file_url"`
}

type TeamMember struct {
	Name string `json:"name"`
	Role string `json:"role"`
}
