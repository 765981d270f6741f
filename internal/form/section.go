package form

import (
	"fmt"
	"slices"
	"strings"

	"profilecard/internal/models"
)

// Entry is one item of a repeated section. Key is stable for the entry's lifetime.
type Entry struct {
	Key   int
	Value any
}

type sectionLayout struct {
	name string
	// fields lists the keys of structured entries; nil means plain string entries.
	fields []string
}

var sectionLayouts = map[models.Kind][]sectionLayout{
	models.KindBioData: {
		{name: "education", fields: []string{"degree", "institution", "year", "specialization"}},
	},
	models.KindProfessional: {
		{name: "productsAndServices", fields: []string{"title", "description", "image", "price", "currency"}},
		{name: "youtubeLinks"},
	},
	models.KindBuyerCard: {{name: "productCodes"}},
	models.KindSeller:    {{name: "permits"}},
}

// section stores entries in an arena indexed by key; order keeps display order.
type section struct {
	layout  sectionLayout
	name    string
	nextKey int
	arena   map[int]any
	order   []int
}

func newSection(layout sectionLayout) *section {
	s := &section{layout: layout, name: layout.name, arena: map[int]any{}}
	s.add()
	return s
}

func (s *section) blank() any {
	if s.layout.fields == nil {
		return ""
	}
	m := make(map[string]any, len(s.layout.fields))
	for _, f := range s.layout.fields {
		m[f] = ""
	}
	return m
}

func (s *section) add() int {
	s.nextKey++
	key := s.nextKey
	s.arena[key] = s.blank()
	s.order = append(s.order, key)
	return key
}

func (s *section) remove(key int) bool {
	if _, ok := s.arena[key]; !ok {
		return false
	}
	delete(s.arena, key)
	s.order = slices.DeleteFunc(s.order, func(k int) bool { return k == key })
	return true
}

func (s *section) entries() []Entry {
	out := make([]Entry, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, Entry{Key: k, Value: copyValue(s.arena[k])})
	}
	return out
}

// values returns the non-empty entries in display order.
func (s *section) values() []any {
	out := []any{}
	for _, k := range s.order {
		v := s.arena[k]
		if isEmpty(v) {
			continue
		}
		out = append(out, copyValue(v))
	}
	return out
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) == ""
	case map[string]any:
		for _, fv := range t {
			if !isEmpty(fv) {
				return false
			}
		}
		return true
	case nil:
		return true
	}
	return false
}

func copyValue(v any) any {
	if m, ok := v.(map[string]any); ok {
		out := make(map[string]any, len(m))
		for k, fv := range m {
			out[k] = fv
		}
		return out
	}
	return v
}

func (f *Form) section(name string) (*section, error) {
	for _, s := range f.sections {
		if s.name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w %q for %s", ErrUnknownSection, name, f.kind)
}

// Sections lists the repeated section names of the form's kind.
func (f *Form) Sections() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.sections))
	for _, s := range f.sections {
		names = append(names, s.name)
	}
	return names
}

// AddEntry appends an empty entry to section and returns its key.
func (f *Form) AddEntry(name string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.section(name)
	if err != nil {
		return 0, err
	}
	return s.add(), nil
}

// RemoveEntry deletes the entry with key. Other entries keep their keys.
func (f *Form) RemoveEntry(name string, key int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.section(name)
	if err != nil {
		return err
	}
	if !s.remove(key) {
		return fmt.Errorf("%w %d in %s", ErrUnknownEntry, key, name)
	}
	return nil
}

// Entries returns a snapshot of a section's entries in display order.
func (f *Form) Entries(name string) ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.section(name)
	if err != nil {
		return nil, err
	}
	return s.entries(), nil
}

// SetEntry replaces the value of a plain string entry.
func (f *Form) SetEntry(name string, key int, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.section(name)
	if err != nil {
		return err
	}
	if s.layout.fields != nil {
		return fmt.Errorf("%s entries are structured; use SetEntryField", name)
	}
	if _, ok := s.arena[key]; !ok {
		return fmt.Errorf("%w %d in %s", ErrUnknownEntry, key, name)
	}
	s.arena[key] = value
	return nil
}

// SetEntryField sets one field of a structured entry.
func (f *Form) SetEntryField(name string, key int, field string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setEntryFieldLocked(name, key, field, value)
}

func (f *Form) setEntryFieldLocked(name string, key int, field string, value any) error {
	s, err := f.section(name)
	if err != nil {
		return err
	}
	if !slices.Contains(s.layout.fields, field) {
		return fmt.Errorf("%s entries have no field %q", name, field)
	}
	entry, ok := s.arena[key].(map[string]any)
	if !ok {
		return fmt.Errorf("%w %d in %s", ErrUnknownEntry, key, name)
	}
	entry[field] = value
	return nil
}

// SetEntryImage converts a file to a data URI and stores it in a structured entry field.
func (f *Form) SetEntryImage(name string, key int, field string, data []byte) error {
	uri, err := f.dataURI(name+"."+field, data)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setEntryFieldLocked(name, key, field, uri)
}
