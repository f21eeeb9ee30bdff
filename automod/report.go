package automod

import (
	"fmt"
	"strings"
	"time"
)

const reportColor = 0xE72323

// Textual content of a moderation report. Visual rendering (embed layout,
// markdown flavor) is the platform collaborator's concern; this type only
// carries the content in a fixed order.
type ReportPayload struct {
	Title         string
	Color         int
	AuthorName    string
	AuthorIconURL string
	Body          string
	Footer        string
	Timestamp     time.Time
}

// Renders the report body: triggered rules' reasons, a checklist of which
// enforcement steps succeeded or failed, the original message content (or an
// explicit no-content marker), and the attachment URLs (or a no-attachments
// marker).
func buildReportPayload(evt *MessageEvent, reportText string, steps []StepResult, now time.Time) *ReportPayload {
	var b strings.Builder

	b.WriteString("**Reasons:**\n")
	b.WriteString(reportText)

	b.WriteString("\n\n**Actions Taken:**")
	for _, step := range steps {
		if step.Stage == StageReport {
			continue
		}
		if step.Status == StepFailed {
			fmt.Fprintf(&b, "\n- %s (failed)", step.Description)
		} else {
			fmt.Fprintf(&b, "\n- %s", step.Description)
		}
	}

	b.WriteString("\n\n**Message:**\n")
	if evt.Content == "" {
		b.WriteString("No Content")
	} else {
		b.WriteString(evt.Content)
	}
	b.WriteString("\n")

	if len(evt.Attachments) == 0 {
		b.WriteString("\nNo Attachments")
	} else {
		for _, att := range evt.Attachments {
			b.WriteString("\n")
			b.WriteString(att.URL)
		}
	}

	return &ReportPayload{
		Title:         "Automod Report",
		Color:         reportColor,
		AuthorName:    evt.Author.Username,
		AuthorIconURL: evt.Author.AvatarURL,
		Body:          b.String(),
		Footer:        fmt.Sprintf("ID: %s", evt.Author.ID),
		Timestamp:     now,
	}
}
