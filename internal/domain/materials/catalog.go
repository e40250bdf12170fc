package materials

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/rshade/ecotray/internal/domain/domainerr"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownMaterial is returned when a material id is not in the catalog.
	ErrUnknownMaterial = fmt.Errorf("materials: unknown material id: %w", domainerr.ErrUnresolvedReference)

	// ErrNoEnvironmentData is returned when a material has no biodegradation
	// window for the requested environment.
	ErrNoEnvironmentData = fmt.Errorf("materials: no data for environment: %w", domainerr.ErrUnresolvedReference)

	// ErrInvalidCatalog is returned when catalog data violates a profile invariant.
	ErrInvalidCatalog = fmt.Errorf("materials: invalid catalog: %w", domainerr.ErrInvalidInput)
)

//go:embed data/materials.yaml
var defaultCatalogYAML []byte

// Catalog is a read-only mapping from material id to profile. It is built
// once and safe for concurrent use; every accessor returns a copy.
type Catalog struct {
	profiles map[MaterialID]MaterialProfile
	ids      []MaterialID
}

// catalogFile is the on-disk layout of a catalog YAML document.
type catalogFile struct {
	Materials []MaterialProfile `yaml:"materials"`
}

var (
	defaultCatalog     *Catalog
	defaultCatalogErr  error
	defaultCatalogOnce sync.Once
)

// Default returns the catalog built from the embedded reference data. The
// embedded document is parsed once; later calls return the same catalog.
func Default() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = LoadCatalog(bytes.NewReader(defaultCatalogYAML))
	})
	return defaultCatalog, defaultCatalogErr
}

// LoadCatalog parses a YAML catalog document and validates every profile.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("materials: parse catalog: %w", err)
	}
	return NewCatalog(file.Materials...)
}

// NewCatalog builds a catalog from profiles. It rejects an empty catalog,
// duplicate ids, and any profile that breaks the window invariants.
func NewCatalog(profiles ...MaterialProfile) (*Catalog, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("%w: no materials defined", ErrInvalidCatalog)
	}

	c := &Catalog{
		profiles: make(map[MaterialID]MaterialProfile, len(profiles)),
		ids:      make([]MaterialID, 0, len(profiles)),
	}
	for _, p := range profiles {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
		if _, dup := c.profiles[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate material id %s", ErrInvalidCatalog, p.ID)
		}
		c.profiles[p.ID] = p.clone()
		c.ids = append(c.ids, p.ID)
	}
	sort.Slice(c.ids, func(i, j int) bool { return c.ids[i] < c.ids[j] })

	return c, nil
}

// Get returns the profile for id, or ErrUnknownMaterial.
func (c *Catalog) Get(id MaterialID) (MaterialProfile, error) {
	p, ok := c.Lookup(id)
	if !ok {
		return MaterialProfile{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, id)
	}
	return p, nil
}

// Lookup returns the profile for id and whether it was found.
func (c *Catalog) Lookup(id MaterialID) (MaterialProfile, bool) {
	p, ok := c.profiles[id]
	if !ok {
		return MaterialProfile{}, false
	}
	return p.clone(), true
}

// IDs returns the registered material ids in sorted order.
func (c *Catalog) IDs() []MaterialID {
	return append([]MaterialID(nil), c.ids...)
}

// Profiles returns every profile, ordered by id.
func (c *Catalog) Profiles() []MaterialProfile {
	out := make([]MaterialProfile, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.profiles[id].clone())
	}
	return out
}

// Len reports the number of materials in the catalog.
func (c *Catalog) Len() int {
	return len(c.profiles)
}
