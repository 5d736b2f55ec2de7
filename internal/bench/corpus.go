// Package bench evaluates sentence segmentation against gold corpora.
package bench

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// Document is one evaluation text with gold sentence end offsets. Offsets
// are byte positions in Text just past each sentence's final character,
// before any trailing whitespace.
type Document struct {
	Name       string `json:"name"`
	Source     string `json:"source,omitempty"`
	Text       string `json:"text"`
	Boundaries []int  `json:"boundaries"`
}

// Validate checks that boundaries are increasing and inside Text.
func (d *Document) Validate() error {
	if d.Text == "" {
		return errors.New("empty text")
	}
	prev := 0
	for i, b := range d.Boundaries {
		if b <= prev || b > len(d.Text) {
			return fmt.Errorf("boundary %d (%d) out of order or range", i, b)
		}
		prev = b
	}
	return nil
}

// Header contains metadata parsed from a transcript header.
type Header struct {
	Source  string
	Speaker string
	Title   string
}

// ParseHeader extracts metadata from leading "# Key: value" lines and
// returns the remaining body with surrounding whitespace trimmed.
func ParseHeader(text string) (Header, string, error) {
	var h Header
	scanner := bufio.NewScanner(strings.NewReader(text))
	offset, bodyStart := 0, len(text)

	for scanner.Scan() {
		line := scanner.Text()
		lineStart := offset
		offset += len(line) + 1

		if !strings.HasPrefix(line, "#") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			bodyStart = lineStart
			break
		}

		key, value, ok := strings.Cut(strings.TrimPrefix(line, "#"), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "Source":
			h.Source = value
		case "Speaker":
			h.Speaker = value
		case "Title":
			h.Title = value
		}
	}
	if err := scanner.Err(); err != nil {
		return Header{}, "", fmt.Errorf("scan header: %w", err)
	}
	if h.Source == "" {
		return Header{}, "", errors.New("missing Source in header")
	}

	return h, strings.TrimSpace(text[bodyStart:]), nil
}

// Sentence is a gold sentence with byte offsets.
type Sentence struct {
	Text  string
	Start int
	End   int
}

// naiveAbbreviations never end a sentence in transcript gold.
var naiveAbbreviations = regexp.MustCompile(`(?i)\b(Mr|Mrs|Ms|Dr|Prof|Sr|Jr|St|vs|etc|i\.e|e\.g|U\.S|U\.K)\.$`)

// ParseSentences splits transcript text at terminal punctuation followed by
// whitespace, skipping common abbreviations. Transcripts rarely carry
// lists or quotations, so this is accurate enough to serve as gold.
func ParseSentences(text string) []Sentence {
	var sentences []Sentence
	start := 0

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '?', '!':
		default:
			continue
		}
		if i+1 < len(text) && text[i+1] != ' ' && text[i+1] != '\n' {
			continue
		}
		if text[i] == '.' && naiveAbbreviations.MatchString(text[start:i+1]) {
			continue
		}

		sentences = append(sentences, Sentence{
			Text:  strings.TrimSpace(text[start : i+1]),
			Start: start,
			End:   i + 1,
		})
		for i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\n') {
			i++
		}
		start = i + 1
	}

	if rest := strings.TrimSpace(text[start:]); rest != "" {
		sentences = append(sentences, Sentence{Text: rest, Start: start, End: len(text)})
	}
	return sentences
}

// Talk is a loaded transcript.
type Talk struct {
	ID        string // filename without extension
	Source    string
	Speaker   string
	Title     string
	RawText   string
	Sentences []Sentence
}

// Document converts the transcript into an evaluation document.
func (t *Talk) Document() *Document {
	d := &Document{Name: t.ID, Source: t.Source, Text: t.RawText}
	for _, s := range t.Sentences {
		d.Boundaries = append(d.Boundaries, s.End)
	}
	return d
}

// LoadTalk loads and parses a transcript file.
func LoadTalk(path string) (*Talk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	header, body, err := ParseHeader(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	return &Talk{
		ID:        stem(path),
		Source:    header.Source,
		Speaker:   header.Speaker,
		Title:     header.Title,
		RawText:   body,
		Sentences: ParseSentences(body),
	}, nil
}

// LoadDocument loads a JSON document as written by the corpus scripts.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if d.Name == "" {
		d.Name = stem(path)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name, err)
	}
	return &d, nil
}

// LoadCorpus loads every .txt transcript and .json document in dir, ordered
// by file name.
func LoadCorpus(dir string) ([]*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var docs []*Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		switch filepath.Ext(entry.Name()) {
		case ".txt":
			talk, err := LoadTalk(path)
			if err != nil {
				return nil, fmt.Errorf("loading %s: %w", entry.Name(), err)
			}
			docs = append(docs, talk.Document())
		case ".json":
			doc, err := LoadDocument(path)
			if err != nil {
				return nil, fmt.Errorf("loading %s: %w", entry.Name(), err)
			}
			docs = append(docs, doc)
		}
	}

	slices.SortStableFunc(docs, func(a, b *Document) int { return strings.Compare(a.Name, b.Name) })
	return docs, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
