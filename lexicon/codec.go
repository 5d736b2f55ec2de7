package lexicon

import (
	"fmt"
	"os"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers from lexicon.proto.
const (
	dictionaryVersion protowire.Number = 1
	dictionaryEntries protowire.Number = 2

	entryToken    protowire.Number = 1
	entryCategory protowire.Number = 2
)

// Marshal encodes d in protobuf wire format. Entries are written in token
// order, so equal dictionaries encode to equal bytes.
func Marshal(d *Dictionary) []byte {
	var b []byte
	if d.version != "" {
		b = protowire.AppendTag(b, dictionaryVersion, protowire.BytesType)
		b = protowire.AppendString(b, d.version)
	}
	for _, e := range d.Entries() {
		var eb []byte
		eb = protowire.AppendTag(eb, entryToken, protowire.BytesType)
		eb = protowire.AppendString(eb, e.Token)
		eb = protowire.AppendTag(eb, entryCategory, protowire.VarintType)
		eb = protowire.AppendVarint(eb, uint64(e.Category))

		b = protowire.AppendTag(b, dictionaryEntries, protowire.BytesType)
		b = protowire.AppendBytes(b, eb)
	}
	return b
}

// Unmarshal decodes a dictionary encoded by Marshal. Unknown fields are
// skipped.
func Unmarshal(b []byte) (*Dictionary, error) {
	var (
		version string
		entries []Entry
	)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDictionary, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == dictionaryVersion && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: version: %w", ErrInvalidDictionary, protowire.ParseError(n))
			}
			version = v
			b = b[n:]
		case num == dictionaryEntries && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: entry: %w", ErrInvalidDictionary, protowire.ParseError(n))
			}
			e, err := unmarshalEntry(v)
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("%w: field %d: %w", ErrInvalidDictionary, num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return New(version, entries...)
}

func unmarshalEntry(b []byte) (Entry, error) {
	var e Entry
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Entry{}, fmt.Errorf("%w: entry: %w", ErrInvalidDictionary, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == entryToken && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return Entry{}, fmt.Errorf("%w: token: %w", ErrInvalidDictionary, protowire.ParseError(n))
			}
			e.Token = v
			b = b[n:]
		case num == entryCategory && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return Entry{}, fmt.Errorf("%w: category: %w", ErrInvalidDictionary, protowire.ParseError(n))
			}
			e.Category = Category(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return Entry{}, fmt.Errorf("%w: entry field %d: %w", ErrInvalidDictionary, num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return e, nil
}

// Load reads a dictionary asset from path.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	d, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return d, nil
}

// Save writes d to path in protobuf wire format.
func Save(path string, d *Dictionary) error {
	if err := os.WriteFile(path, Marshal(d), 0o644); err != nil {
		return fmt.Errorf("write dictionary: %w", err)
	}
	return nil
}
