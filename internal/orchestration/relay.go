package orchestration

import (
	"fmt"
	"strings"

	"github.com/tradepulse/tradepulse/models"
)

// Update is one human-readable progress update derived from a state snapshot.
// Author is the originating field name, de-slugified and title-cased; Body is
// the field content, verbatim for string fields and bulleted for structured
// ones.
type Update struct {
	Field  string `json:"field"`
	Author string `json:"author"`
	Body   string `json:"body"`
}

// SnapshotUpdates produces one update per non-empty field of the snapshot, in
// the canonical field order. Fields that were already emitted for an earlier
// snapshot are emitted again when still (or newly) non-empty; this is a
// progress feed, not a diff feed.
func SnapshotUpdates(snap *models.AnalysisState) []Update {
	var updates []Update
	for _, field := range snap.ReportFields() {
		if field.Empty() {
			continue
		}
		updates = append(updates, Update{
			Field:  field.Name,
			Author: Deslug(field.Name),
			Body:   fieldBody(field),
		})
	}
	return updates
}

func fieldBody(field models.FieldView) string {
	if field.Entries == nil {
		return field.Text
	}
	lines := make([]string, 0, len(field.Entries))
	for _, e := range field.Entries {
		lines = append(lines, fmt.Sprintf("- **%s**: %s", Deslug(e.Key), e.Value))
	}
	return strings.Join(lines, "\n")
}

// Deslug turns a snake_case field identifier into a title-cased label,
// e.g. "final_trade_decision" becomes "Final Trade Decision".
func Deslug(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
