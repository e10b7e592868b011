// Package report renders orchestration results as DOCX artifacts.
package report

import (
	"strings"

	"github.com/MikeSquared-Agency/tender/internal/assistant"
	"github.com/MikeSquared-Agency/tender/internal/docx"
)

// TranscriptName and DraftName are the fixed artifact names uploaded to the
// response folder.
const (
	TranscriptName = "chat_history.docx"
	DraftName      = "draft_response.docx"
)

// Transcript renders the full conversation, one paragraph per message with
// the role label in bold. Message order is preserved as given.
func Transcript(msgs []assistant.Message) ([]byte, error) {
	doc := docx.New()
	doc.AddHeading("Chat History")

	for _, m := range msgs {
		doc.AddParagraph([]docx.Run{
			{Text: roleLabel(m.Role) + ": ", Bold: true},
			{Text: m.Text},
		})
	}
	return doc.Bytes()
}

// Draft renders the final assistant reply, interpreting paired ** markers
// as bold spans line by line. An empty draft gets a placeholder so the
// artifact is never blank.
func Draft(text string) ([]byte, error) {
	if text == "" {
		text = "No response available."
	}

	doc := docx.New()
	doc.AddHeading("Draft Proposal")

	for _, line := range strings.Split(text, "\n") {
		doc.AddParagraph(docx.ParseEmphasis(line))
	}
	return doc.Bytes()
}

func roleLabel(role string) string {
	if role == "user" {
		return "User"
	}
	return "Assistant"
}
