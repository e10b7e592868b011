package chunk

import (
	"strings"
	"testing"
)

func TestSplit_UnderThreshold(t *testing.T) {
	docs := []Document{{Name: "a.txt", Text: "hello world"}}
	chunks := Split(docs, 100)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "hello world" {
		t.Errorf("chunk text = %q", chunks[0].Text)
	}
	if chunks[0].Source != "a.txt" {
		t.Errorf("chunk source = %q", chunks[0].Source)
	}
	if chunks[0].Start != 0 || chunks[0].End != 11 {
		t.Errorf("chunk range = %d-%d", chunks[0].Start, chunks[0].End)
	}
}

func TestSplit_LosslessPartition(t *testing.T) {
	text := strings.Repeat("abcdefghij", 3333) + "xyz" // 33333 bytes
	docs := []Document{{Name: "big.txt", Text: text}}
	chunks := Split(docs, 10000)

	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(chunks))
	}

	var sb strings.Builder
	for _, c := range chunks {
		if len(c.Text) > 10000 {
			t.Errorf("chunk exceeds threshold: %d bytes", len(c.Text))
		}
		if c.Text != text[c.Start:c.End] {
			t.Errorf("chunk %d-%d does not match offsets", c.Start, c.End)
		}
		sb.WriteString(c.Text)
	}
	if sb.String() != text {
		t.Error("concatenated chunks do not reconstruct the original text")
	}
}

func TestSplit_EmptyInput(t *testing.T) {
	if chunks := Split(nil, 100); len(chunks) != 0 {
		t.Errorf("expected no chunks for nil input, got %d", len(chunks))
	}
	if chunks := Split([]Document{{Name: "empty.txt", Text: ""}}, 100); len(chunks) != 0 {
		t.Errorf("expected no chunks for empty document, got %d", len(chunks))
	}
}

func TestSplit_NonPositiveSize(t *testing.T) {
	docs := []Document{{Name: "a.txt", Text: "hello"}}
	if chunks := Split(docs, 0); chunks != nil {
		t.Errorf("expected nil for size 0, got %d chunks", len(chunks))
	}
}

func TestSplit_PreservesDocumentOrder(t *testing.T) {
	docs := []Document{
		{Name: "first.txt", Text: "aaa"},
		{Name: "second.txt", Text: "bbbb"},
	}
	chunks := Split(docs, 2)

	wantSources := []string{"first.txt", "first.txt", "second.txt", "second.txt"}
	if len(chunks) != len(wantSources) {
		t.Fatalf("expected %d chunks, got %d", len(wantSources), len(chunks))
	}
	for i, want := range wantSources {
		if chunks[i].Source != want {
			t.Errorf("chunk %d source = %q, want %q", i, chunks[i].Source, want)
		}
	}
}

// A 50-byte file and a 150000-byte file with a 100000 threshold yield 3
// content chunks and 7 prompts total.
func TestPrompts_TwoAttachmentScenario(t *testing.T) {
	docs := []Document{
		{Name: "small.txt", Text: strings.Repeat("a", 50)},
		{Name: "large.txt", Text: strings.Repeat("b", 150000)},
	}
	chunks := Split(docs, 100000)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[1].Text) != 100000 || len(chunks[2].Text) != 50000 {
		t.Errorf("large file split = %d + %d bytes", len(chunks[1].Text), len(chunks[2].Text))
	}

	prompts := Prompts(chunks)
	if len(prompts) != 7 {
		t.Fatalf("expected 7 prompts, got %d", len(prompts))
	}

	if !strings.Contains(prompts[0], "content chunk 1") || !strings.Contains(prompts[0], "small.txt") {
		t.Errorf("prompt 0 should acknowledge chunk 1 of small.txt: %.80q", prompts[0])
	}
	if !strings.Contains(prompts[2], "content chunk 3") || !strings.Contains(prompts[2], "large.txt") {
		t.Errorf("prompt 2 should acknowledge chunk 3 of large.txt: %.80q", prompts[2])
	}
	if !strings.HasPrefix(prompts[3], "RFP Analysis Prompt") {
		t.Errorf("prompt 3 should be the RFP analysis prompt: %.60q", prompts[3])
	}
	if !strings.Contains(prompts[6], "create the final proposal") {
		t.Errorf("last prompt should request the final proposal: %.60q", prompts[6])
	}
}

func TestPrompts_NoChunks(t *testing.T) {
	prompts := Prompts(nil)
	if len(prompts) != AnalysisPromptCount {
		t.Fatalf("expected only the %d analysis prompts, got %d", AnalysisPromptCount, len(prompts))
	}
}
