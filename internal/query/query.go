// Package query narrows the normalized row collections before they reach the
// aggregation engine. Matching is exact on trimmed values; an unmatched
// filter yields an empty result, never an error.
package query

import (
	"sort"
	"strings"

	"github.com/skhan-ssq/studianclass-dashboard/internal/models"
)

// CourseTitles lists the distinct course titles present in the progress rows,
// trimmed and sorted.
func CourseTitles(progress []models.ProgressRecord) []string {
	seen := make(map[string]struct{})
	titles := make([]string, 0)
	for _, r := range progress {
		title := strings.TrimSpace(r.CourseTitle)
		if title == "" {
			continue
		}
		if _, ok := seen[title]; !ok {
			seen[title] = struct{}{}
			titles = append(titles, title)
		}
	}
	sort.Strings(titles)
	return titles
}

// RoomsForCourse lists the distinct group codes whose progress rows carry the
// course title, sorted.
func RoomsForCourse(progress []models.ProgressRecord, courseTitle string) []string {
	courseTitle = strings.TrimSpace(courseTitle)
	seen := make(map[string]struct{})
	codes := make([]string, 0)
	for _, r := range progress {
		if strings.TrimSpace(r.CourseTitle) != courseTitle || r.GroupCode == "" {
			continue
		}
		if _, ok := seen[r.GroupCode]; !ok {
			seen[r.GroupCode] = struct{}{}
			codes = append(codes, r.GroupCode)
		}
	}
	sort.Strings(codes)
	return codes
}

// CertsForCourse selects the cert rows belonging to any room of the course.
// An empty title selects the whole cohort.
func CertsForCourse(certs []models.CertRecord, progress []models.ProgressRecord, courseTitle string) []models.CertRecord {
	if strings.TrimSpace(courseTitle) == "" {
		return append([]models.CertRecord(nil), certs...)
	}

	rooms := make(map[string]struct{})
	for _, code := range RoomsForCourse(progress, courseTitle) {
		rooms[code] = struct{}{}
	}

	selected := make([]models.CertRecord, 0)
	for _, r := range certs {
		if _, ok := rooms[r.GroupCode]; ok {
			selected = append(selected, r)
		}
	}
	return selected
}

// CertsForRoom selects the cert rows of one group.
func CertsForRoom(certs []models.CertRecord, groupCode string) []models.CertRecord {
	selected := make([]models.CertRecord, 0)
	for _, r := range certs {
		if r.GroupCode == groupCode {
			selected = append(selected, r)
		}
	}
	return selected
}

// ProgressForUser selects one user's progress rows within a group.
func ProgressForUser(progress []models.ProgressRecord, groupCode, nickname string) []models.ProgressRecord {
	nickname = strings.TrimSpace(nickname)
	selected := make([]models.ProgressRecord, 0)
	for _, r := range progress {
		if r.GroupCode == groupCode && strings.TrimSpace(r.Nickname) == nickname {
			selected = append(selected, r)
		}
	}
	return selected
}

// DailyForUser selects one user's daily cert rows within a group, applying
// the display-name fallback.
func DailyForUser(daily []models.CertDailyRecord, groupCode, displayName string) []models.CertDailyRecord {
	displayName = strings.TrimSpace(displayName)
	selected := make([]models.CertDailyRecord, 0)
	for _, r := range daily {
		if r.GroupCode == groupCode && r.DisplayName() == displayName {
			selected = append(selected, r)
		}
	}
	return selected
}

// ProgressInRange selects rows whose date falls in [start, end], both
// inclusive. ISO date strings sort lexicographically in calendar order.
func ProgressInRange(progress []models.ProgressRecord, start, end string) []models.ProgressRecord {
	selected := make([]models.ProgressRecord, 0)
	for _, r := range progress {
		if r.ProgressDate >= start && r.ProgressDate <= end {
			selected = append(selected, r)
		}
	}
	return selected
}

// DailyInRange selects daily cert rows whose date falls in [start, end].
func DailyInRange(daily []models.CertDailyRecord, start, end string) []models.CertDailyRecord {
	selected := make([]models.CertDailyRecord, 0)
	for _, r := range daily {
		if r.CertDate >= start && r.CertDate <= end {
			selected = append(selected, r)
		}
	}
	return selected
}

// NicknamesForRoom lists the selectable identities of a room: names from the
// progress rows first, then cert-only identities that the progress data never
// mentions, all sorted together.
func NicknamesForRoom(progress []models.ProgressRecord, certs []models.CertRecord, groupCode string) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)

	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	for _, r := range progress {
		if r.GroupCode == groupCode {
			add(strings.TrimSpace(r.Nickname))
		}
	}
	for _, r := range certs {
		if r.GroupCode == groupCode {
			add(r.DisplayName())
		}
	}

	sort.Strings(names)
	return names
}

// GroupFor returns the metadata row for a group, if present.
func GroupFor(groups []models.GroupMeta, groupCode string) (models.GroupMeta, bool) {
	for _, g := range groups {
		if g.GroupCode == groupCode {
			return g, true
		}
	}
	return models.GroupMeta{}, false
}
