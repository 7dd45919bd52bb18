package models

// Stats is the point-in-time summary derived from a user's full time-block
// history. All values are computed from a snapshot; nothing here is stored.
type Stats struct {
	TotalMeetings      int     `json:"totalMeetings"`
	TotalMet           int     `json:"totalMet"`
	MeetingSuccessRate float64 `json:"meetingSuccessRate"`
	HoursAccepted      float64 `json:"hoursAccepted"`
	ActiveMonths       int     `json:"activeMonths"`
	MeetingsPerMonth   float64 `json:"meetingsPerMonth"`
	UniqueContacts     int     `json:"uniqueContacts"`
}
