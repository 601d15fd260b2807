package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"github.com/eugenenazirov/summit-pack/internal/condition"
	"gopkg.in/yaml.v3"
)

//go:embed items.yaml
var defaultItems []byte

// Catalog is the immutable, ordered set of equipment items.
type Catalog struct {
	items []Item
	index map[string]int
}

// yamlCatalog represents the catalog file structure.
type yamlCatalog struct {
	Items []yamlItem `yaml:"items"`
}

type yamlItem struct {
	ID           string                       `yaml:"id"`
	Name         string                       `yaml:"name"`
	Size         yamlSize                     `yaml:"size"`
	Weight       float64                      `yaml:"weight"`
	Compressible bool                         `yaml:"compressible"`
	Default      string                       `yaml:"default"`
	Overrides    map[string]map[string]string `yaml:"overrides"`
	Requires     string                       `yaml:"requires"`
	Predicate    string                       `yaml:"predicate"`
	Quantity     string                       `yaml:"quantity"`
}

type yamlSize struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Default parses the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultItems)
}

// MustDefault is like Default but panics on malformed embedded data.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded items: %v", err))
	}
	return c
}

// LoadFile reads a catalog from a YAML file on disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc yamlCatalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	if len(doc.Items) == 0 {
		return nil, ErrEmptyCatalog
	}

	items := make([]Item, 0, len(doc.Items))
	for _, raw := range doc.Items {
		item, err := raw.toItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return New(items)
}

// New builds a catalog from already decoded items, validating identity and
// cross-item references.
func New(items []Item) (*Catalog, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		items: make([]Item, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for _, item := range items {
		if err := validateItem(item); err != nil {
			return nil, err
		}
		if _, dup := c.index[item.ID]; dup {
			return nil, malformed(item.ID, "duplicate id")
		}
		c.index[item.ID] = len(c.items)
		c.items = append(c.items, item)
	}

	for _, item := range c.items {
		if item.Rules.Requires == "" {
			continue
		}
		if item.Rules.Requires == item.ID {
			return nil, malformed(item.ID, "requires itself")
		}
		if _, ok := c.index[item.Rules.Requires]; !ok {
			return nil, malformed(item.ID, fmt.Sprintf("requires unknown item %q", item.Rules.Requires))
		}
	}
	return c, nil
}

// Item returns the entry registered under id.
func (c *Catalog) Item(id string) (Item, bool) {
	i, ok := c.index[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Has reports whether id is a catalog item.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Items returns every entry in declaration order.
func (c *Catalog) Items() []Item {
	return slices.Clone(c.items)
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Position returns an item's declaration index, or -1 if unknown.
func (c *Catalog) Position(id string) int {
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}

func (y yamlItem) toItem() (Item, error) {
	rules := Rules{
		Default:  Irrelevant,
		Requires: y.Requires,
	}
	if y.Default != "" {
		rules.Default = Necessity(y.Default)
		if !rules.Default.Valid() {
			return Item{}, malformed(y.ID, fmt.Sprintf("unknown default necessity %q", y.Default))
		}
	}

	if len(y.Overrides) > 0 {
		rules.Overrides = make(map[condition.Field]map[string]Necessity, len(y.Overrides))
		for name, table := range y.Overrides {
			if !condition.IsField(name) {
				return Item{}, malformed(y.ID, fmt.Sprintf("unknown override field %q", name))
			}
			field := condition.Field(name)
			options := condition.Options(field)
			converted := make(map[string]Necessity, len(table))
			for value, necessity := range table {
				if !slices.Contains(options, value) {
					return Item{}, malformed(y.ID, fmt.Sprintf("unknown %s value %q", field, value))
				}
				n := Necessity(necessity)
				if !n.Valid() {
					return Item{}, malformed(y.ID, fmt.Sprintf("unknown necessity %q", necessity))
				}
				converted[value] = n
			}
			rules.Overrides[field] = converted
		}
	}

	if y.Predicate != "" {
		p, ok := predicates[y.Predicate]
		if !ok {
			return Item{}, malformed(y.ID, fmt.Sprintf("unknown predicate %q", y.Predicate))
		}
		rules.Predicate = p
		rules.PredicateName = y.Predicate
	}

	if y.Quantity != "" {
		q, ok := quantities[y.Quantity]
		if !ok {
			return Item{}, malformed(y.ID, fmt.Sprintf("unknown quantity rule %q", y.Quantity))
		}
		rules.Quantity = q
		rules.QuantityName = y.Quantity
	}

	return Item{
		ID:           y.ID,
		Name:         y.Name,
		Footprint:    Footprint{Width: y.Size.Width, Height: y.Size.Height},
		Weight:       y.Weight,
		Compressible: y.Compressible,
		Rules:        rules,
	}, nil
}

func validateItem(item Item) error {
	if item.ID == "" {
		return fmt.Errorf("%w: empty id", ErrMalformedItem)
	}
	if item.Footprint.Width < 1 || item.Footprint.Height < 1 {
		return malformed(item.ID, "footprint must be at least 1x1")
	}
	if item.Weight < 0 {
		return malformed(item.ID, "weight must be >= 0")
	}
	if !item.Rules.Default.Valid() {
		return malformed(item.ID, fmt.Sprintf("unknown default necessity %q", item.Rules.Default))
	}
	return nil
}

func malformed(id, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrMalformedItem, id, reason)
}
