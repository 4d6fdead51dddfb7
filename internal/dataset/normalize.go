// Package dataset loads the four snapshot documents, normalizes their
// loosely-shaped rows into typed records, and holds the current snapshot
// behind a single atomic pointer.
package dataset

import (
	"bytes"
	"encoding/json"

	"github.com/skhan-ssq/studianclass-dashboard/internal/models"
)

// Descriptor names one of the four source documents.
type Descriptor struct {
	Name      string
	File      string
	LegacyKey string
}

// The historical exports sometimes placed rows under a dataset-specific key
// instead of "rows". The cert extractor was reused for the daily and group
// documents, so those share the cert legacy key.
var (
	ProgressDataset  = Descriptor{Name: "progress", File: "study_progress.json", LegacyKey: "json_study_user_progress"}
	CertDataset      = Descriptor{Name: "cert", File: "study_cert.json", LegacyKey: "json_study_cert"}
	CertDailyDataset = Descriptor{Name: "cert_daily", File: "study_cert_daily.json", LegacyKey: "json_study_cert"}
	GroupMetaDataset = Descriptor{Name: "group_meta", File: "opentalk_code_start.json", LegacyKey: "json_study_cert"}
)

// Datasets lists the documents one full load fetches.
var Datasets = []Descriptor{ProgressDataset, CertDataset, CertDailyDataset, GroupMetaDataset}

// extractRows locates the row array of a document: the "rows" key, the legacy
// key, or nothing. A document that is not JSON, not an object, or carries
// neither key yields nil, never an error.
func extractRows(doc []byte, legacyKey string) json.RawMessage {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(doc, &top); err != nil {
		return nil
	}
	if raw, ok := top["rows"]; ok && isArray(raw) {
		return raw
	}
	if raw, ok := top[legacyKey]; ok && isArray(raw) {
		return raw
	}
	return nil
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// decodeRows unmarshals each row element independently so one malformed row
// drops only itself, not the whole dataset.
func decodeRows[T any](doc []byte, legacyKey string) []T {
	raw := extractRows(doc, legacyKey)
	if raw == nil {
		return []T{}
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return []T{}
	}

	rows := make([]T, 0, len(elements))
	for _, element := range elements {
		var row T
		if err := json.Unmarshal(element, &row); err != nil {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// NormalizeProgress parses the progress document, returning its rows and the
// optional generated_at timestamp.
func NormalizeProgress(doc []byte) ([]models.ProgressRecord, string) {
	rows := decodeRows[models.ProgressRecord](doc, ProgressDataset.LegacyKey)
	for i := range rows {
		rows[i].ProgressDate = clipDate(rows[i].ProgressDate)
	}

	var meta struct {
		GeneratedAt string `json:"generated_at"`
	}
	_ = json.Unmarshal(doc, &meta)

	return rows, meta.GeneratedAt
}

// NormalizeCerts parses the cert summary document.
func NormalizeCerts(doc []byte) []models.CertRecord {
	return decodeRows[models.CertRecord](doc, CertDataset.LegacyKey)
}

// NormalizeCertDaily parses the daily certification document.
func NormalizeCertDaily(doc []byte) []models.CertDailyRecord {
	rows := decodeRows[models.CertDailyRecord](doc, CertDailyDataset.LegacyKey)
	for i := range rows {
		rows[i].CertDate = clipDate(rows[i].CertDate)
	}
	return rows
}

// NormalizeGroupMeta parses the group metadata document.
func NormalizeGroupMeta(doc []byte) []models.GroupMeta {
	rows := decodeRows[models.GroupMeta](doc, GroupMetaDataset.LegacyKey)
	for i := range rows {
		rows[i].StartDate = clipDate(rows[i].StartDate)
		rows[i].EndDate = clipDate(rows[i].EndDate)
	}
	return rows
}

// clipDate trims timestamps down to their YYYY-MM-DD prefix so date fields
// compare lexicographically.
func clipDate(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
