package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skhan-ssq/studianclass-dashboard/internal/models"
)

func TestNumberAcceptsLooseEncodings(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want float64
	}{
		{"number", `{"v": 42.5}`, 42.5},
		{"numeric string", `{"v": "42.5"}`, 42.5},
		{"padded string", `{"v": " 7 "}`, 7},
		{"null", `{"v": null}`, 0},
		{"empty string", `{"v": ""}`, 0},
		{"garbage string", `{"v": "n/a"}`, 0},
		{"missing", `{}`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var doc struct {
				V models.Number `json:"v"`
			}
			require.NoError(t, json.Unmarshal([]byte(tc.doc), &doc))
			require.InDelta(t, tc.want, doc.V.Float64(), 1e-9)
		})
	}
}

func TestNullNumberTracksPresence(t *testing.T) {
	var doc struct {
		A models.NullNumber `json:"a"`
		B models.NullNumber `json:"b"`
		C models.NullNumber `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": "3.5", "b": null, "c": ""}`), &doc))

	require.True(t, doc.A.Valid)
	require.InDelta(t, 3.5, doc.A.Value, 1e-9)
	require.False(t, doc.B.Valid)
	require.False(t, doc.C.Valid)
}

func TestNullNumberMarshalsNullWhenAbsent(t *testing.T) {
	out, err := json.Marshal(struct {
		A models.NullNumber `json:"a"`
		B models.NullNumber `json:"b"`
	}{
		A: models.NullNumber{Value: 2.5, Valid: true},
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"a": 2.5, "b": null}`, string(out))
}

func TestNullIntTruncatesAndTracksPresence(t *testing.T) {
	var doc struct {
		Rank models.NullInt `json:"rank"`
		None models.NullInt `json:"none"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"rank": "12", "none": null}`), &doc))

	require.True(t, doc.Rank.Valid)
	require.Equal(t, 12, doc.Rank.Value)
	require.False(t, doc.None.Valid)

	out, err := json.Marshal(doc.None)
	require.NoError(t, err)
	require.Equal(t, "null", string(out))
}

func TestDisplayNameFallsBackToName(t *testing.T) {
	require.Equal(t, "hana", models.DisplayName("hana", "Kim Hana"))
	require.Equal(t, "Kim Hana", models.DisplayName("", "Kim Hana"))
	require.Equal(t, "Kim Hana", models.DisplayName("   ", "Kim Hana"))
	require.Equal(t, "", models.DisplayName("", ""))
}
