// Package snapshot reads and writes the day's items as a YAML document.
package snapshot

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/timeblock/internal/item"
)

// Version is the current document version.
const Version = 1

// Document is the on-disk shape of a snapshot.
type Document struct {
	Version int     `yaml:"version"`
	Items   []Entry `yaml:"items"`
}

// Entry is one item with its times written as HH:MM.
type Entry struct {
	ID       int64  `yaml:"id"`
	Content  string `yaml:"content"`
	Start    string `yaml:"start"`
	End      string `yaml:"end"`
	Editable bool   `yaml:"editable"`
}

// Encode writes items to w.
func Encode(w io.Writer, items []item.Item) error {
	doc := Document{Version: Version, Items: make([]Entry, 0, len(items))}
	for _, it := range items {
		doc.Items = append(doc.Items, Entry{
			ID:       it.ID,
			Content:  it.Content,
			Start:    item.ClockLabel(it.Start),
			End:      item.ClockLabel(it.End),
			Editable: it.Editable,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return enc.Close()
}

// Decode reads a snapshot from r. Every entry is validated; the first
// invalid entry aborts the decode.
func Decode(r io.Reader) ([]item.Item, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if doc.Version > Version {
		return nil, fmt.Errorf("unsupported snapshot version %d", doc.Version)
	}

	items := make([]item.Item, 0, len(doc.Items))
	for i, e := range doc.Items {
		it, err := e.toItem()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		items = append(items, it)
	}
	return items, nil
}

func (e Entry) toItem() (item.Item, error) {
	if e.ID <= 0 {
		return item.Item{}, fmt.Errorf("id must be positive, got %d", e.ID)
	}
	start, err := item.ParseClock(e.Start)
	if err != nil {
		return item.Item{}, fmt.Errorf("start %q: %w", e.Start, err)
	}
	end, err := item.ParseClock(e.End)
	if err != nil {
		return item.Item{}, fmt.Errorf("end %q: %w", e.End, err)
	}
	it := item.Item{
		ID:       e.ID,
		Content:  e.Content,
		Start:    start,
		End:      end,
		Editable: e.Editable,
	}
	if err := it.Validate(); err != nil {
		return item.Item{}, err
	}
	return it, nil
}
