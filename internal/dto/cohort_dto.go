package dto

// RoomOption is one selectable room of a course.
type RoomOption struct {
	Code  string `json:"opentalk_code"`
	Label string `json:"label"`
}

// RankedCertRow is one row of a certification ranking table, highest average
// first. AvgCerts is rounded to one decimal.
type RankedCertRow struct {
	GroupCode string  `json:"opentalk_code"`
	RoomLabel string  `json:"room_label"`
	Nickname  string  `json:"nickname"`
	AvgCerts  float64 `json:"avg_certs"`
}

// RankedProgressRow is one row of a progress ranking table, largest gain
// first. Current and Growth are rounded to one decimal.
type RankedProgressRow struct {
	GroupCode string  `json:"opentalk_code"`
	RoomLabel string  `json:"room_label"`
	Nickname  string  `json:"nickname"`
	Current   float64 `json:"current"`
	Growth    float64 `json:"growth"`
}

// PeriodQuery is the validated input of the explicit-period rankings.
type PeriodQuery struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02"`
	End   string `json:"end" validate:"required,datetime=2006-01-02"`
}
