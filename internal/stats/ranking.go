package stats

import (
	"sort"

	"github.com/skhan-ssq/studianclass-dashboard/internal/dateutil"
	"github.com/skhan-ssq/studianclass-dashboard/internal/models"
)

// RankedCert is one row of a certification ranking table.
type RankedCert struct {
	GroupCode   string
	DisplayName string
	AvgCerts    float64
}

// RankedGrowth is one row of a progress ranking table.
type RankedGrowth struct {
	GroupCode   string
	DisplayName string
	Current     float64
	Growth      float64
}

// CertRanking computes the 4-week average certification rate for every member
// of the cohort and returns the positive results sorted descending. A zero
// average means "no information" and is excluded rather than ranked last.
func CertRanking(cohort []models.CertRecord, daily []models.CertDailyRecord, groups []models.GroupMeta, today dateutil.Date) []RankedCert {
	rows := make([]RankedCert, 0, len(cohort))
	for _, member := range cohort {
		avg := FourWeekAvgCerts(daily, groups, member.GroupCode, member.DisplayName(), today)
		if avg <= 0 {
			continue
		}
		rows = append(rows, RankedCert{
			GroupCode:   member.GroupCode,
			DisplayName: member.DisplayName(),
			AvgCerts:    avg,
		})
	}
	sortCertsDesc(rows)
	return rows
}

// PeriodCertRanking is the explicit-period counterpart of CertRanking.
func PeriodCertRanking(cohort []models.CertRecord, daily []models.CertDailyRecord, start, end string) []RankedCert {
	rows := make([]RankedCert, 0, len(cohort))
	for _, member := range cohort {
		avg := PeriodAvgCerts(daily, member.GroupCode, member.DisplayName(), start, end)
		if avg <= 0 {
			continue
		}
		rows = append(rows, RankedCert{
			GroupCode:   member.GroupCode,
			DisplayName: member.DisplayName(),
			AvgCerts:    avg,
		})
	}
	sortCertsDesc(rows)
	return rows
}

// ProgressRanking computes 4-week progress growth for every cohort member and
// returns only those who gained, sorted by gain descending.
func ProgressRanking(cohort []models.CertRecord, progress []models.ProgressRecord, groups []models.GroupMeta, today dateutil.Date) []RankedGrowth {
	rows := make([]RankedGrowth, 0, len(cohort))
	for _, member := range cohort {
		g := FourWeekProgressGrowth(progress, groups, member.GroupCode, member.DisplayName(), today)
		if g.Growth <= 0 {
			continue
		}
		rows = append(rows, RankedGrowth{
			GroupCode:   member.GroupCode,
			DisplayName: member.DisplayName(),
			Current:     g.Current,
			Growth:      g.Growth,
		})
	}
	sortGrowthDesc(rows)
	return rows
}

// PeriodProgressRanking is the explicit-period counterpart of ProgressRanking.
func PeriodProgressRanking(cohort []models.CertRecord, progress []models.ProgressRecord, start, end string) []RankedGrowth {
	rows := make([]RankedGrowth, 0, len(cohort))
	for _, member := range cohort {
		g := PeriodProgressGrowth(progress, member.GroupCode, member.DisplayName(), start, end)
		if g.Growth <= 0 {
			continue
		}
		rows = append(rows, RankedGrowth{
			GroupCode:   member.GroupCode,
			DisplayName: member.DisplayName(),
			Current:     g.Current,
			Growth:      g.Growth,
		})
	}
	sortGrowthDesc(rows)
	return rows
}

func sortCertsDesc(rows []RankedCert) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AvgCerts > rows[j].AvgCerts
	})
}

func sortGrowthDesc(rows []RankedGrowth) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Growth > rows[j].Growth
	})
}
