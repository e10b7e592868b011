// Package docx writes minimal WordprocessingML documents: headings and
// paragraphs of plain or bold runs, packaged as a .docx zip. It covers
// exactly what the transcript and draft artifacts need.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// Run is a span of text with uniform formatting.
type Run struct {
	Text string
	Bold bool
}

type paragraph struct {
	style string
	runs  []Run
}

// Document accumulates content and serializes it on Bytes.
type Document struct {
	paragraphs []paragraph
}

func New() *Document {
	return &Document{}
}

// AddHeading appends a title-styled paragraph.
func (d *Document) AddHeading(text string) {
	d.paragraphs = append(d.paragraphs, paragraph{
		style: "Title",
		runs:  []Run{{Text: text}},
	})
}

// AddParagraph appends a body paragraph. An empty run list produces an
// empty paragraph.
func (d *Document) AddParagraph(runs []Run) {
	d.paragraphs = append(d.paragraphs, paragraph{runs: runs})
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// Bytes packages the document as a .docx archive.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", d.documentXML()},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", part.name, err)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("write %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}

func (d *Document) documentXML() string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	for _, p := range d.paragraphs {
		sb.WriteString(`<w:p>`)
		if p.style != "" {
			sb.WriteString(`<w:pPr><w:pStyle w:val="` + p.style + `"/></w:pPr>`)
		}
		for _, r := range p.runs {
			sb.WriteString(`<w:r>`)
			if r.Bold {
				sb.WriteString(`<w:rPr><w:b/></w:rPr>`)
			}
			// xml:space preserves leading/trailing whitespace in runs.
			sb.WriteString(`<w:t xml:space="preserve">` + escape(r.Text) + `</w:t>`)
			sb.WriteString(`</w:r>`)
		}
		sb.WriteString(`</w:p>`)
	}

	sb.WriteString(`</w:body></w:document>`)
	return sb.String()
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
