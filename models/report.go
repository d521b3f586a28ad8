package models

import "strings"

// Section is one named block of the final report.
type Section struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Report is the structured document assembled from the last state snapshot.
// It is built once, after the snapshot stream ends, and never mutated.
type Report struct {
	Sections []Section `json:"sections"`
}

// Empty reports whether the workflow populated no reportable fields at all.
// An empty report is a valid run outcome, distinct from a run that failed.
func (r *Report) Empty() bool {
	return len(r.Sections) == 0
}

// Markdown renders the report for display.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("## Final Analysis Report\n\n")
	for _, sec := range r.Sections {
		b.WriteString("### ")
		b.WriteString(sec.Title)
		b.WriteString("\n")
		b.WriteString(sec.Body)
		if !strings.HasSuffix(sec.Body, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
