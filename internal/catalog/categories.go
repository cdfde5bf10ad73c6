package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var categoriesYAML []byte

// Categories is the fixed category set. It is configuration data; nothing mutates it.
type Categories struct {
	list []Category
	byID map[string]Category
}

// DefaultCategories parses the embedded category set.
func DefaultCategories() (*Categories, error) {
	return ParseCategories(categoriesYAML)
}

func ParseCategories(b []byte) (*Categories, error) {
	var list []Category
	if err := yaml.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}
	byID := make(map[string]Category, len(list))
	for _, c := range list {
		if c.ID == "" {
			return nil, fmt.Errorf("parse categories: category %q has no id", c.Name)
		}
		if _, dup := byID[c.ID]; dup {
			return nil, fmt.Errorf("parse categories: duplicate id %q", c.ID)
		}
		byID[c.ID] = c
	}
	return &Categories{list: list, byID: byID}, nil
}

func (c *Categories) List() []Category {
	out := make([]Category, len(c.list))
	copy(out, c.list)
	return out
}

func (c *Categories) Get(id string) (Category, bool) {
	cat, ok := c.byID[id]
	return cat, ok
}
