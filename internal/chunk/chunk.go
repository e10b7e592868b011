package chunk

import "fmt"

// Document is one extracted attachment ready for chunking.
type Document struct {
	Name string
	Text string
}

// Chunk is a length-bounded slice of a document's text. Source and the
// offset range keep provenance so a chunk can be traced back to its file.
type Chunk struct {
	Source string
	Start  int
	End    int // exclusive
	Text   string
}

// Split slices every document into chunks of at most size bytes, preserving
// document order and byte order within each document. Boundaries are purely
// length-based; a chunk can cut mid-word. Concatenating the chunks of one
// document reconstructs its text exactly.
func Split(docs []Document, size int) []Chunk {
	if size <= 0 {
		return nil
	}

	var chunks []Chunk
	for _, doc := range docs {
		for start := 0; start < len(doc.Text); start += size {
			end := start + size
			if end > len(doc.Text) {
				end = len(doc.Text)
			}
			chunks = append(chunks, Chunk{
				Source: doc.Name,
				Start:  start,
				End:    end,
				Text:   doc.Text[start:end],
			})
		}
	}
	return chunks
}

// Prompts builds the full prompt sequence for one proposal run: one
// acknowledgement prompt per content chunk, in chunk order, followed by the
// fixed analysis prompts. Each later prompt depends on the conversational
// context built by the earlier ones, so the order is significant.
func Prompts(chunks []Chunk) []string {
	prompts := make([]string, 0, len(chunks)+len(analysisPrompts))
	for i, c := range chunks {
		prompts = append(prompts, fmt.Sprintf(
			"Please acknowledge and save the following content chunk %d (from %s, bytes %d-%d):\n%s",
			i+1, c.Source, c.Start, c.End, c.Text,
		))
	}
	prompts = append(prompts, analysisPrompts...)
	return prompts
}
