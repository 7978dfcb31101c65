package theme

import (
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Table maps preset theme names to their defining words. It is read-only once built.
type Table struct {
	themes map[string][]string
}

// NewTable builds a table from a name to words mapping. The input is copied.
func NewTable(themes map[string][]string) (table *Table) {
	table = &Table{themes: make(map[string][]string, len(themes))}
	for name, words := range themes {
		table.themes[name] = append([]string(nil), words...)
	}
	return table
}

// DefaultTable returns the built-in presets.
func DefaultTable() (table *Table) {
	table = NewTable(map[string][]string{
		"любовь":  {"любовь", "сердце", "нежность", "страсть", "поцелуй", "разлука"},
		"природа": {"лес", "река", "поле", "ветер", "трава", "небо"},
		"море":    {"море", "волна", "парус", "берег", "шторм", "чайка"},
		"война":   {"война", "битва", "солдат", "оружие", "победа", "враг"},
		"город":   {"город", "улица", "дом", "фонарь", "трамвай", "площадь"},
	})
	return table
}

// LoadTable reads a YAML file of `name: [word, ...]` entries on top of the built-in presets.
// Entries in the file replace built-in presets with the same name.
func LoadTable(path string) (table *Table, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read theme table: %s", path)
		return table, err
	}

	var fromFile map[string][]string
	err = yaml.Unmarshal(data, &fromFile)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse theme table: %s", path)
		return table, err
	}

	table = DefaultTable()
	for name, words := range fromFile {
		if name == "" {
			err = errors.Errorf("theme table %s has an entry with an empty name", path)
			return table, err
		}
		table.themes[name] = append([]string(nil), words...)
	}

	return table, err
}

// Names lists the preset names in sorted order, for presentation.
func (t *Table) Names() (names []string) {
	names = make([]string, 0, len(t.themes))
	for name := range t.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Words returns a copy of the words defining the named preset.
func (t *Table) Words(name string) (words []string, ok bool) {
	var stored []string
	stored, ok = t.themes[name]
	if !ok {
		return words, ok
	}
	words = append([]string(nil), stored...)
	return words, ok
}
