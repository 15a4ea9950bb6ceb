package dto

// SeriesPoint is one day of the registrations time series.
type SeriesPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// TopActivity is one entry of the top-activities ranking.
type TopActivity struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Participants int64  `json:"participants"`
}

// DashboardSnapshot is the derived aggregate payload served to admins and
// secretaries. Every field is always present; the series are always dense
// with exactly 30/14/7 consecutive daily entries ending today. DBError is
// set only when the whole aggregation failed and the zero payload was
// substituted.
type DashboardSnapshot struct {
	TotalUsers                  int64         `json:"totalUsers"`
	TotalActivities             int64         `json:"totalActivities"`
	TotalRegistrations          int64         `json:"totalRegistrations"`
	ActivitiesWithRegistrations int64         `json:"activitiesWithRegistrations"`
	OpenActivities              int64         `json:"openActivities"`
	OngoingActivities           int64         `json:"ongoingActivities"`
	FinishedActivities          int64         `json:"finishedActivities"`
	TotalNews                   int64         `json:"totalNews"`
	ActiveMembers               int64         `json:"activeMembers"`
	RegistrationsSeries30       []SeriesPoint `json:"registrationsSeries30"`
	RegistrationsSeries14       []SeriesPoint `json:"registrationsSeries14"`
	RegistrationsSeries7        []SeriesPoint `json:"registrationsSeries7"`
	TopActivities               []TopActivity `json:"topActivities"`
	ParticipationRate           float64       `json:"participationRate"`
	UniqueRegisteredUsers       int64         `json:"uniqueRegisteredUsers"`
	DBError                     string        `json:"dbError,omitempty"`
}
