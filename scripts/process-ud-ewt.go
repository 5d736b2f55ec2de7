//go:build ignore

// Convert UD English Web Treebank CoNLL-U files into sbd-bench JSON
// documents. Gold boundaries come from the treebank's sentence split.
// Usage: go run scripts/process-ud-ewt.go -in DIR -out testdata/ud-ewt
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const source = "https://github.com/UniversalDependencies/UD_English-EWT"

// Document matches the JSON format read by internal/bench.
type Document struct {
	Name       string `json:"name"`
	Source     string `json:"source"`
	Text       string `json:"text"`
	Boundaries []int  `json:"boundaries"`
}

func main() {
	inDir := flag.String("in", "testdata/ud-ewt", "directory containing en_ewt-ud-*.conllu")
	outDir := flag.String("out", "testdata/ud-ewt", "output directory")
	docLen := flag.Int("doc-sentences", 0, "split each treebank document after N sentences (0: keep newdoc boundaries)")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", *outDir, err)
		os.Exit(1)
	}

	var all []string
	for _, split := range []string{"train", "dev", "test"} {
		inFile := filepath.Join(*inDir, fmt.Sprintf("en_ewt-ud-%s.conllu", split))

		fmt.Printf("Processing %s...\n", split)
		docs, err := readCoNLLU(inFile, *docLen)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inFile, err)
			continue
		}

		var sentences []string
		for _, d := range docs {
			sentences = append(sentences, d...)
		}
		all = append(all, sentences...)

		outFile := filepath.Join(*outDir, split+".json")
		doc := build("UD-EWT-"+split, sentences)
		if err := write(outFile, doc); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outFile, err)
			continue
		}
		fmt.Printf("  -> %s (%d documents, %d sentences, %d bytes)\n", outFile, len(docs), len(doc.Boundaries), len(doc.Text))
	}

	if len(all) > 0 {
		outFile := filepath.Join(*outDir, "combined.json")
		doc := build("UD-EWT-combined", all)
		if err := write(outFile, doc); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outFile, err)
			os.Exit(1)
		}
		fmt.Printf("  -> %s (%d sentences)\n", outFile, len(doc.Boundaries))
	}
}

// readCoNLLU returns sentence texts grouped by "# newdoc" markers, or in
// groups of docLen sentences when docLen > 0.
func readCoNLLU(path string, docLen int) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	var (
		docs    [][]string
		current []string
		pending string
	)
	flush := func() {
		if len(current) > 0 {
			docs = append(docs, current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "# newdoc") && docLen == 0:
			flush()
		case strings.HasPrefix(line, "# text = "):
			pending = strings.TrimPrefix(line, "# text = ")
		case line == "" && pending != "":
			current = append(current, pending)
			pending = ""
			if docLen > 0 && len(current) == docLen {
				flush()
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning file: %w", err)
	}
	if pending != "" {
		current = append(current, pending)
	}
	flush()
	return docs, nil
}

// build joins sentences with single spaces and records where each ends.
func build(name string, sentences []string) *Document {
	var text strings.Builder
	boundaries := make([]int, 0, len(sentences))
	for i, sent := range sentences {
		if i > 0 {
			text.WriteByte(' ')
		}
		text.WriteString(sent)
		boundaries = append(boundaries, text.Len())
	}
	return &Document{Name: name, Source: source, Text: text.String(), Boundaries: boundaries}
}

func write(path string, doc *Document) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
