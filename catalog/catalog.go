// Package catalog holds the immutable satellite / coverage catalog loaded
// once at process start and shared read-only across all concurrent mission
// computations. All polygon validation and antimeridian normalization
// happens here, at load time, never during mission computation.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/signalsfoundry/satcom-planner/model"
)

var (
	ErrSatelliteExists   = errors.New("satellite already exists")
	ErrSatelliteNotFound = errors.New("satellite not found")
	ErrSatelliteBadInput = errors.New("invalid satellite definition")
)

// Catalog is a thread-safe store of satellite definitions keyed by ID.
// Writes happen only during the startup import step; afterwards every
// accessor is a read and the catalog is safe to share across goroutines.
type Catalog struct {
	mu sync.RWMutex

	satellites  map[string]*model.SatelliteDefinition
	byTransport map[model.Transport][]string
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		satellites:  make(map[string]*model.SatelliteDefinition),
		byTransport: make(map[model.Transport][]string),
	}
}

// AddSatellite validates and inserts a satellite definition. Coverage rings
// are checked (≥3 vertices, no self-intersection) and split at the
// antimeridian here so that mission computation can assume well-formed,
// non-wrapping rings.
func (c *Catalog) AddSatellite(sat *model.SatelliteDefinition) error {
	if sat == nil || sat.ID == "" {
		return fmt.Errorf("%w: nil or empty ID", ErrSatelliteBadInput)
	}
	if !sat.Transport.Valid() {
		return fmt.Errorf("%w: %q has unknown transport %q", ErrSatelliteBadInput, sat.ID, sat.Transport)
	}
	if sat.Transport == model.TransportX && sat.OrbitalLongitudeDeg == nil {
		return fmt.Errorf("%w: X-band satellite %q needs an orbital longitude", ErrSatelliteBadInput, sat.ID)
	}
	for i := range sat.Polygons {
		p := &sat.Polygons[i]
		if err := ValidateRing(p.Ring); err != nil {
			return fmt.Errorf("%w: %q polygon %q: %v", ErrSatelliteBadInput, sat.ID, p.Name, err)
		}
		p.Rings = SplitAntimeridian(p.Ring)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.satellites[sat.ID]; exists {
		return fmt.Errorf("%w: %q", ErrSatelliteExists, sat.ID)
	}
	c.satellites[sat.ID] = sat

	ids := append(c.byTransport[sat.Transport], sat.ID)
	sort.Strings(ids)
	c.byTransport[sat.Transport] = ids
	return nil
}

// Satellite returns the definition with the given ID, or nil if not found.
func (c *Catalog) Satellite(id string) *model.SatelliteDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.satellites[id]
}

// SatellitesFor returns all satellites for a transport, ordered by ID.
func (c *Catalog) SatellitesFor(t model.Transport) []*model.SatelliteDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*model.SatelliteDefinition, 0, len(c.byTransport[t]))
	for _, id := range c.byTransport[t] {
		out = append(out, c.satellites[id])
	}
	return out
}

// Counts returns the number of satellites per transport.
func (c *Catalog) Counts() map[model.Transport]int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[model.Transport]int, len(c.byTransport))
	for t, ids := range c.byTransport {
		out[t] = len(ids)
	}
	return out
}
