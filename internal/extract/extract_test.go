package extract

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

func buildArchive(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return buf.Bytes()
}

func TestText_PlainText(t *testing.T) {
	got := Text("notes.TXT", []byte("hello proposal"))
	if got != "hello proposal" {
		t.Errorf("Text = %q", got)
	}
}

func TestText_Docx(t *testing.T) {
	documentXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>
<w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph</w:t></w:r></w:p>
</w:body></w:document>`
	content := buildArchive(t, map[string]string{"word/document.xml": documentXML})

	got := Text("rfp.docx", content)
	want := "First paragraph\nSecond paragraph"
	if got != want {
		t.Errorf("Text = %q, want %q", got, want)
	}
}

func TestText_Pptx_SlideOrder(t *testing.T) {
	slide := func(text string) string {
		return `<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">` +
			`<a:p><a:r><a:t>` + text + `</a:t></a:r></a:p></p:sld>`
	}
	content := buildArchive(t, map[string]string{
		"ppt/slides/slide10.xml": slide("ten"),
		"ppt/slides/slide1.xml":  slide("one"),
		"ppt/slides/slide2.xml":  slide("two"),
	})

	got := Text("deck.pptx", content)
	want := "one\ntwo\nten\n"
	if got != want {
		t.Errorf("Text = %q, want %q", got, want)
	}
}

func TestText_UnsupportedExtension(t *testing.T) {
	got := Text("archive.tar.gz", []byte("whatever"))
	if got != "unsupported file type: .gz" {
		t.Errorf("Text = %q", got)
	}
}

func TestText_CorruptContentBecomesErrorText(t *testing.T) {
	got := Text("broken.docx", []byte("this is not a zip"))
	if !strings.HasPrefix(got, "error processing broken.docx:") {
		t.Errorf("expected error text, got %q", got)
	}
}

func TestText_LegacyDocBecomesErrorText(t *testing.T) {
	got := Text("old.doc", []byte{0xd0, 0xcf, 0x11, 0xe0})
	if !strings.Contains(got, "error processing old.doc") {
		t.Errorf("expected error text for legacy .doc, got %q", got)
	}
	if !strings.Contains(got, ".docx") {
		t.Errorf("error text should point at the conversion path, got %q", got)
	}
}

func TestText_MissingDocumentPart(t *testing.T) {
	content := buildArchive(t, map[string]string{"other.xml": "<x/>"})
	got := Text("empty.docx", content)
	if !strings.Contains(got, "word/document.xml not found") {
		t.Errorf("expected missing-part error text, got %q", got)
	}
}
