package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dusk-indust/linkgraph/internal/linkage"
	"github.com/dusk-indust/linkgraph/internal/parse"
)

// ResultExport is the top-level JSON export structure.
type ResultExport struct {
	Phrase      string            `json:"phrase"`
	Mode        string            `json:"mode"`
	SentenceID  string            `json:"sentenceId,omitempty"`
	ExportedAt  string            `json:"exportedAt"`
	Skipped     int               `json:"skipped"`
	Relaxed     bool              `json:"relaxed"`
	Views       []linkage.View    `json:"views,omitempty"`
	Frequencies []FrequencyExport `json:"frequencies,omitempty"`
}

// FrequencyExport is one aggregated disjunct, written in disjunct notation.
type FrequencyExport struct {
	Word     string `json:"word"`
	Disjunct string `json:"disjunct"`
	Count    int    `json:"count"`
}

// ExportResult builds a ResultExport stamped with the current time.
func ExportResult(res *parse.Result) *ResultExport {
	export := &ResultExport{
		Phrase:     res.Phrase,
		Mode:       res.Mode.String(),
		SentenceID: res.SentenceID,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Skipped:    res.Skipped,
		Relaxed:    res.Relaxed,
		Views:      res.Views,
	}
	for _, occ := range res.Frequencies {
		export.Frequencies = append(export.Frequencies, FrequencyExport{
			Word:     occ.Word,
			Disjunct: disjunctString(occ.Connectors),
			Count:    occ.Count,
		})
	}
	return export
}

// JSON renders res as indented JSON.
func JSON(res *parse.Result) ([]byte, error) {
	data, err := json.MarshalIndent(ExportResult(res), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return append(data, '\n'), nil
}
