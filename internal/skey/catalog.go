package skey

import (
	"sort"
	"strings"
)

// Catalog is the group -> subgroup -> symbol name tree shown in the browser.
type Catalog struct {
	groups map[string]map[string][]string
}

func NewCatalog() *Catalog {
	return &Catalog{groups: map[string]map[string][]string{}}
}

func (c *Catalog) Add(group, subgroup, name string) {
	subs, ok := c.groups[group]
	if !ok {
		subs = map[string][]string{}
		c.groups[group] = subs
	}
	for _, n := range subs[subgroup] {
		if n == name {
			return
		}
	}
	subs[subgroup] = append(subs[subgroup], name)
}

func (c *Catalog) Groups() []string {
	out := make([]string, 0, len(c.groups))
	for g := range c.groups {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) Subgroups(group string) []string {
	subs := c.groups[group]
	out := make([]string, 0, len(subs))
	for sg := range subs {
		out = append(out, sg)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) Symbols(group, subgroup string) []string {
	names := c.groups[group][subgroup]
	out := make([]string, len(names))
	copy(out, names)
	sort.Strings(out)
	return out
}

func (c *Catalog) Len() int {
	n := 0
	for _, subs := range c.groups {
		for _, names := range subs {
			n += len(names)
		}
	}
	return n
}

// Filter keeps every symbol whose name, subgroup or group contains text,
// ignoring case.
func (c *Catalog) Filter(text string) *Catalog {
	needle := strings.ToUpper(text)
	out := NewCatalog()
	for g, subs := range c.groups {
		for sg, names := range subs {
			for _, n := range names {
				if strings.Contains(strings.ToUpper(n), needle) ||
					strings.Contains(strings.ToUpper(sg), needle) ||
					strings.Contains(strings.ToUpper(g), needle) {
					out.Add(g, sg, n)
				}
			}
		}
	}
	return out
}

// CatalogOf builds the tree from symbol metadata.
func CatalogOf(symbols []Symbol) *Catalog {
	c := NewCatalog()
	for _, s := range symbols {
		c.Add(s.Group, s.Subgroup, s.Name)
	}
	return c
}
