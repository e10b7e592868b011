package report

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/MikeSquared-Agency/tender/internal/assistant"
)

func documentXML(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("artifact is not a valid zip: %v", err)
	}
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				t.Fatalf("open document.xml: %v", err)
			}
			defer rc.Close()
			content, _ := io.ReadAll(rc)
			return string(content)
		}
	}
	t.Fatal("document.xml not found")
	return ""
}

func TestTranscript(t *testing.T) {
	msgs := []assistant.Message{
		{Role: "user", Text: "Please analyze the RFP", CreatedAt: 1},
		{Role: "assistant", Text: "Analysis complete", CreatedAt: 2},
	}

	data, err := Transcript(msgs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := documentXML(t, data)

	if !strings.Contains(body, "Chat History") {
		t.Error("heading missing")
	}
	if !strings.Contains(body, "User: ") {
		t.Error("user role label missing")
	}
	if !strings.Contains(body, "Assistant: ") {
		t.Error("assistant role label missing")
	}
	if !strings.Contains(body, "Analysis complete") {
		t.Error("message body missing")
	}
	// Role labels are bold, message bodies are not.
	if !strings.Contains(body, `<w:rPr><w:b/></w:rPr><w:t xml:space="preserve">User: </w:t>`) {
		t.Error("role label should be a bold run")
	}
}

func TestTranscript_Empty(t *testing.T) {
	data, err := Transcript(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(documentXML(t, data), "Chat History") {
		t.Error("empty transcript still gets its heading")
	}
}

func TestDraft_EmphasisMarkup(t *testing.T) {
	data, err := Draft("**Executive Summary**\nOur solution delivers **measurable** outcomes.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := documentXML(t, data)

	if !strings.Contains(body, "Draft Proposal") {
		t.Error("heading missing")
	}
	if !strings.Contains(body, `<w:rPr><w:b/></w:rPr><w:t xml:space="preserve">Executive Summary</w:t>`) {
		t.Error("title line should be bold")
	}
	if !strings.Contains(body, `<w:rPr><w:b/></w:rPr><w:t xml:space="preserve">measurable</w:t>`) {
		t.Error("inline emphasis should be bold")
	}
	if strings.Contains(body, "**") {
		t.Error("markers must not leak into the document")
	}
}

func TestDraft_EmptyGetsPlaceholder(t *testing.T) {
	data, err := Draft("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(documentXML(t, data), "No response available.") {
		t.Error("placeholder missing for empty draft")
	}
}

func TestDraft_UnterminatedMarkerIsLiteral(t *testing.T) {
	data, err := Draft("intro **dangling")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := documentXML(t, data)
	if !strings.Contains(body, "intro **dangling") {
		t.Error("unterminated marker should render literally")
	}
	if strings.Contains(body, "<w:b/>") {
		t.Error("no bold runs expected")
	}
}
