package dto

// DashboardSummaryResponse carries the headline cohort numbers.
type DashboardSummaryResponse struct {
	TotalUsers       int    `json:"total_users"`
	StartPeriod      string `json:"start_period"`
	ActiveGroupUsers int    `json:"active_group_users"`
	LastUpdatedAt    string `json:"last_updated_at"`
	CacheHit         bool   `json:"cache_hit"`
}

// WeeklyCountPoint is one bar of a weekly chart, oldest window first.
type WeeklyCountPoint struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}
