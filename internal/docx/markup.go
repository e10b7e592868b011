package docx

import "strings"

// ParseEmphasis splits a line on paired ** delimiters into plain and bold
// runs, left to right. An unterminated trailing marker is literal text, not
// emphasis. Empty spans produce no run.
func ParseEmphasis(line string) []Run {
	var runs []Run
	for {
		start := strings.Index(line, "**")
		if start == -1 {
			break
		}
		end := strings.Index(line[start+2:], "**")
		if end == -1 {
			break
		}
		end += start + 2

		if start > 0 {
			runs = append(runs, Run{Text: line[:start]})
		}
		if bold := line[start+2 : end]; bold != "" {
			runs = append(runs, Run{Text: bold, Bold: true})
		}
		line = line[end+2:]
	}
	if line != "" {
		runs = append(runs, Run{Text: line})
	}
	return runs
}
