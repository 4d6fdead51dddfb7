package models

import "strings"

// ProgressRecord is one sampled completion percentage for a user in a group.
type ProgressRecord struct {
	GroupCode    string `json:"opentalk_code"`
	CourseTitle  string `json:"study_group_title"`
	Nickname     string `json:"nickname"`
	ProgressDate string `json:"progress_date"`
	Progress     Number `json:"progress"`
}

// CertRecord is the per-user certification summary; one row per user.
type CertRecord struct {
	GroupCode     string     `json:"opentalk_code"`
	Nickname      string     `json:"nickname"`
	Name          string     `json:"name"`
	UserRank      NullInt    `json:"user_rank"`
	CertDaysCount NullInt    `json:"cert_days_count"`
	AverageWeek   NullNumber `json:"average_week"`
}

// CertDailyRecord is one user's certification activity on one day. Several
// rows may exist for the same user and day before aggregation.
type CertDailyRecord struct {
	GroupCode string `json:"opentalk_code"`
	Nickname  string `json:"nickname"`
	Name      string `json:"name"`
	CertDate  string `json:"cert_date"`
	CertCount Number `json:"cert_count"`
}

// GroupMeta defines a group's operating window and current status.
type GroupMeta struct {
	GroupCode string  `json:"opentalk_code"`
	StartDate string  `json:"opentalk_start_date"`
	EndDate   string  `json:"opentalk_end_date"`
	IsActive  NullInt `json:"is_active"`
}

// Active reports whether the group is flagged as currently operating.
func (g GroupMeta) Active() bool {
	return g.IsActive.Valid && g.IsActive.Value == 1
}

// DisplayName resolves a user's statistical identity: nickname when present,
// otherwise the secondary name field. Both cert datasets must go through this
// resolution or the same person splits into two identities.
func DisplayName(nickname, name string) string {
	if trimmed := strings.TrimSpace(nickname); trimmed != "" {
		return trimmed
	}
	return strings.TrimSpace(name)
}

// DisplayName resolves the record's user identity.
func (r CertRecord) DisplayName() string {
	return DisplayName(r.Nickname, r.Name)
}

// DisplayName resolves the record's user identity.
func (r CertDailyRecord) DisplayName() string {
	return DisplayName(r.Nickname, r.Name)
}

// UserKey identifies a user within a group.
type UserKey struct {
	GroupCode   string
	DisplayName string
}

// Key returns the record's user key.
func (r CertRecord) Key() UserKey {
	return UserKey{GroupCode: r.GroupCode, DisplayName: r.DisplayName()}
}

// Key returns the record's user key.
func (r CertDailyRecord) Key() UserKey {
	return UserKey{GroupCode: r.GroupCode, DisplayName: r.DisplayName()}
}
