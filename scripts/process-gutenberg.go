//go:build ignore

// Convert raw Project Gutenberg downloads into sbd-bench transcripts: a
// "# Source:" header followed by paragraphs separated by blank lines.
// Gold boundaries for these files come from bench.ParseSentences, so the
// output is a smoke corpus for dialogue-heavy prose rather than a gold set.
// Usage: go run scripts/process-gutenberg.go -dir testdata/gutenberg
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var books = map[string]struct {
	Title  string
	Author string
	Year   string
}{
	"pride_and_prejudice": {"Pride and Prejudice", "Jane Austen", "1813"},
	"moby_dick":           {"Moby Dick", "Herman Melville", "1851"},
	"great_expectations":  {"Great Expectations", "Charles Dickens", "1861"},
	"origin_of_species":   {"On the Origin of Species", "Charles Darwin", "1859"},
	"tom_sawyer":          {"The Adventures of Tom Sawyer", "Mark Twain", "1876"},
	"jane_eyre":           {"Jane Eyre", "Charlotte Brontë", "1847"},
}

var (
	startMarkers = []string{
		"*** START OF THE PROJECT GUTENBERG EBOOK",
		"*** START OF THIS PROJECT GUTENBERG EBOOK",
		"*END*THE SMALL PRINT",
	}
	endMarkers = []string{
		"*** END OF THE PROJECT GUTENBERG EBOOK",
		"*** END OF THIS PROJECT GUTENBERG EBOOK",
		"End of Project Gutenberg",
		"End of the Project Gutenberg",
	}

	chapterRe      = regexp.MustCompile(`(?m)^(Chapter|CHAPTER)\s+([IVX]+|[0-9]+)[\.\]\s]`)
	illustrationRe = regexp.MustCompile(`\[Illustration[^\]]*\]`)
	romanHeaderRe  = regexp.MustCompile(`^[IVXLC]+\.?$`)
)

func main() {
	dir := flag.String("dir", "testdata/gutenberg", "directory holding *_raw.txt downloads")
	limit := flag.Int("limit", 50000, "approximate maximum body size in bytes")
	flag.Parse()

	files, err := filepath.Glob(filepath.Join(*dir, "*_raw.txt"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error finding files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No *_raw.txt files in %s\n", *dir)
		os.Exit(1)
	}

	for _, rawFile := range files {
		name := strings.TrimSuffix(filepath.Base(rawFile), "_raw.txt")
		meta, ok := books[name]
		if !ok {
			fmt.Printf("Skipping unknown book: %s\n", name)
			continue
		}

		outFile := filepath.Join(*dir, name+".txt")
		fmt.Printf("Processing %s...\n", name)
		header := fmt.Sprintf("# Source: https://www.gutenberg.org/\n# Speaker: %s\n# Title: %s (%s)\n\n", meta.Author, meta.Title, meta.Year)
		if err := processBook(rawFile, outFile, header, *limit); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", name, err)
			continue
		}
		fmt.Printf("  -> %s\n", outFile)
	}
}

func processBook(inPath, outPath, header string, limit int) error {
	content, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	text := string(content)

	start := 0
	for _, m := range startMarkers {
		if idx := strings.Index(text, m); idx != -1 {
			if eol := strings.IndexByte(text[idx:], '\n'); eol != -1 {
				start = idx + eol + 1
			}
			break
		}
	}
	end := len(text)
	for _, m := range endMarkers {
		if idx := strings.Index(text, m); idx != -1 {
			end = idx
			break
		}
	}
	if start > end {
		return fmt.Errorf("start marker after end marker")
	}

	body := truncate(cleanBody(text[start:end]), limit)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	w.WriteString(header)
	w.WriteString(body)
	w.WriteString("\n")
	return w.Flush()
}

// truncate cuts body at the first sentence end past limit.
func truncate(body string, limit int) string {
	if limit <= 0 || len(body) <= limit {
		return body
	}
	for i := limit; i < len(body)-1 && i < limit+1000; i++ {
		switch body[i] {
		case '.', '!', '?':
			if body[i+1] == ' ' || body[i+1] == '\n' {
				return body[:i+1]
			}
		}
	}
	return body[:limit]
}

// cleanBody drops front matter before the first chapter, removes
// illustration markers and rejoins hard-wrapped paragraphs.
func cleanBody(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	if loc := chapterRe.FindStringIndex(text); loc != nil && loc[0] < 50000 {
		text = text[loc[0]:]
	}
	text = illustrationRe.ReplaceAllString(text, "")

	var (
		paragraphs []string
		para       strings.Builder
	)
	flush := func() {
		if para.Len() > 0 {
			paragraphs = append(paragraphs, para.String())
			para.Reset()
		}
	}

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimRight(line, " \t")
		switch {
		case line == "":
			flush()
		case isChapterHeader(line):
			flush()
			paragraphs = append(paragraphs, line)
		default:
			if para.Len() > 0 {
				para.WriteByte(' ')
			}
			para.WriteString(line)
		}
	}
	flush()

	return strings.Join(paragraphs, "\n\n")
}

func isChapterHeader(line string) bool {
	line = strings.TrimSpace(line)
	return strings.HasPrefix(line, "CHAPTER ") || strings.HasPrefix(line, "Chapter ") || romanHeaderRe.MatchString(line)
}
