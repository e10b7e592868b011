// Package extract converts raw attachment bytes into plain text, dispatched
// by file extension. Failures never abort a batch: they come back as error
// text in place of content so the assistant sees what went wrong.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
)

// Text extracts plain text from one attachment. It always returns usable
// content: unsupported formats and parse failures produce a textual notice
// that flows downstream as if it were the file's content.
func Text(name string, content []byte) string {
	ext := strings.ToLower(filepath.Ext(name))

	var (
		text string
		err  error
	)
	switch ext {
	case ".txt":
		text = string(content)
	case ".docx":
		text, err = wordText(content)
	case ".doc":
		// Legacy binary .doc needs an external converter we do not have;
		// the upstream drive flow is expected to deliver .docx.
		err = fmt.Errorf("legacy .doc format is not supported, convert to .docx")
	case ".pdf":
		text, err = pdfText(content)
	case ".xlsx", ".xls":
		text, err = excelText(content)
	case ".pptx":
		text, err = slidesText(content)
	default:
		return fmt.Sprintf("unsupported file type: %s", ext)
	}

	if err != nil {
		return fmt.Sprintf("error processing %s: %v", name, err)
	}
	return text
}

func pdfText(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	text, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return string(text), nil
}

func excelText(content []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		for _, row := range rows {
			sb.WriteString(strings.Join(row, "\t"))
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}
