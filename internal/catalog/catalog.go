// Package catalog holds the validated room and entrance records of the
// currently loaded building, one entry per floor in load order.
package catalog

import (
	"github.com/poofware/wayfinding-service/internal/models"
)

// Catalog is built once per building load and never mutated after it is
// handed to the index.
type Catalog struct {
	building string
	floors   []*models.Floor
	byName   map[string]int
}

func New(building string) *Catalog {
	return &Catalog{
		building: building,
		byName:   make(map[string]int),
	}
}

// BuildingName returns the name of the building this catalog was loaded for.
func (c *Catalog) BuildingName() string { return c.building }

// AddFloor appends a floor. A floor with an existing name replaces the old
// entry in place, keeping its position.
func (c *Catalog) AddFloor(f *models.Floor) {
	if i, ok := c.byName[f.Name]; ok {
		c.floors[i] = f
		return
	}
	c.byName[f.Name] = len(c.floors)
	c.floors = append(c.floors, f)
}

func (c *Catalog) Floor(name string) (*models.Floor, bool) {
	i, ok := c.byName[name]
	if !ok {
		return nil, false
	}
	return c.floors[i], true
}

// Floors returns the floors in load order. The slice is a copy; the floors
// themselves are shared and must be treated as read-only.
func (c *Catalog) Floors() []*models.Floor {
	out := make([]*models.Floor, len(c.floors))
	copy(out, c.floors)
	return out
}

func (c *Catalog) Len() int { return len(c.floors) }

// Building returns a models.Building view of the catalog.
func (c *Catalog) Building() *models.Building {
	b := &models.Building{
		Name:       c.building,
		Floors:     make(map[string]*models.Floor, len(c.floors)),
		FloorOrder: make([]string, 0, len(c.floors)),
	}
	for _, f := range c.floors {
		b.Floors[f.Name] = f
		b.FloorOrder = append(b.FloorOrder, f.Name)
	}
	return b
}
