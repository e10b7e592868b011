package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

func readPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a valid zip: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(content)
	}
	t.Fatalf("part %s not found in archive", name)
	return ""
}

func TestDocument_Bytes(t *testing.T) {
	doc := New()
	doc.AddHeading("Chat History")
	doc.AddParagraph([]Run{
		{Text: "User: ", Bold: true},
		{Text: "hello <world> & co"},
	})

	data, err := doc.Bytes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := readPart(t, data, "word/document.xml")

	if !strings.Contains(body, `<w:pStyle w:val="Title"/>`) {
		t.Error("heading style missing")
	}
	if !strings.Contains(body, "Chat History") {
		t.Error("heading text missing")
	}
	if !strings.Contains(body, `<w:rPr><w:b/></w:rPr><w:t xml:space="preserve">User: </w:t>`) {
		t.Error("bold role run missing")
	}
	if !strings.Contains(body, "hello &lt;world&gt; &amp; co") {
		t.Error("body text should be xml-escaped")
	}

	for _, part := range []string{"[Content_Types].xml", "_rels/.rels"} {
		if readPart(t, data, part) == "" {
			t.Errorf("part %s is empty", part)
		}
	}
}

func TestDocument_EmptyParagraph(t *testing.T) {
	doc := New()
	doc.AddParagraph(nil)

	data, err := doc.Bytes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(readPart(t, data, "word/document.xml"), "<w:p></w:p>") {
		t.Error("expected an empty paragraph element")
	}
}
