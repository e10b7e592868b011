package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// wordText pulls paragraph text from a DOCX archive's word/document.xml.
func wordText(content []byte) (string, error) {
	part, err := zipPart(content, "word/document.xml")
	if err != nil {
		return "", err
	}
	return ooxmlText(part, "p", "t")
}

// slidesText pulls shape text from every slide of a PPTX archive, in slide
// order.
func slidesText(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open archive: %w", err)
	}

	var slides []*zip.File
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			slides = append(slides, f)
		}
	}
	// Lexicographic order puts slide10 before slide2; sort numerically.
	sort.Slice(slides, func(a, b int) bool {
		return slideIndex(slides[a].Name) < slideIndex(slides[b].Name)
	})

	var sb strings.Builder
	for _, slide := range slides {
		rc, err := slide.Open()
		if err != nil {
			return "", fmt.Errorf("open %s: %w", slide.Name, err)
		}
		part, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("read %s: %w", slide.Name, err)
		}

		text, err := ooxmlText(part, "p", "t")
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", slide.Name, err)
		}
		sb.WriteString(text)
		if text != "" && !strings.HasSuffix(text, "\n") {
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

func slideIndex(name string) int {
	digits := strings.TrimSuffix(strings.TrimPrefix(name, "ppt/slides/slide"), ".xml")
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

func zipPart(content []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%s not found in archive", name)
}

// ooxmlText walks an OOXML part collecting character data inside textElem
// elements, with a newline at the close of each paraElem. Namespaces are
// ignored; both WordprocessingML (w:) and DrawingML (a:) use the same local
// names for paragraphs and text runs.
func ooxmlText(part []byte, paraElem, textElem string) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(part))

	var sb strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == textElem {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case textElem:
				inText = false
			case paraElem:
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
