package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/poofware/wayfinding-service/internal/models"
)

const (
	DefaultBuildingsBasePath = "bygninger"
	defaultMapExt            = ".pdf"
)

// CatalogFile is the YAML layout of CATALOG_FILE.
//
//	base_path: bygninger
//	buildings:
//	  - name: porcelaenshaven
//	    latitude: 55.6766
//	    longitude: 12.5341
//	    floors:
//	      - name: stue
//	        map: stue.pdf
type CatalogFile struct {
	BasePath  string                      `yaml:"base_path"`
	Buildings []models.BuildingDescriptor `yaml:"buildings"`
}

// DefaultCatalog is used when no catalog file is configured.
func DefaultCatalog() CatalogFile {
	return CatalogFile{
		BasePath: DefaultBuildingsBasePath,
		Buildings: []models.BuildingDescriptor{
			{
				Name:      "porcelaenshaven",
				Latitude:  55.6766,
				Longitude: 12.5341,
				Floors:    floorList("stue", "1_sal", "2_sal", "3_sal", "4_sal"),
			},
			{
				Name:      "solbjerg",
				Latitude:  55.6815,
				Longitude: 12.5300,
				Floors:    floorList("stue", "1_sal", "2_sal", "3_sal", "4_sal", "5_sal"),
			},
		},
	}
}

func floorList(names ...string) []models.FloorDescriptor {
	out := make([]models.FloorDescriptor, 0, len(names))
	for _, n := range names {
		out = append(out, models.FloorDescriptor{Name: n})
	}
	return out
}

// ReadCatalogFile parses a catalog file. Map references are left relative;
// call Resolve to anchor them.
func ReadCatalogFile(path string) (CatalogFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return CatalogFile{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	var cf CatalogFile
	if err := yaml.Unmarshal(raw, &cf); err != nil {
		return CatalogFile{}, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return cf, nil
}

// Resolve validates the catalog and returns building descriptors whose map
// references are paths under basePath/<building>/. Floors without a map get
// "<floor>.pdf"; absolute map paths are kept as is.
func (cf CatalogFile) Resolve(basePath string) ([]models.BuildingDescriptor, error) {
	if basePath == "" {
		basePath = cf.BasePath
	}
	seen := make(map[string]bool, len(cf.Buildings))
	out := make([]models.BuildingDescriptor, 0, len(cf.Buildings))
	for _, b := range cf.Buildings {
		name := strings.TrimSpace(b.Name)
		if name == "" {
			return nil, fmt.Errorf("catalog building without a name")
		}
		if seen[name] {
			return nil, fmt.Errorf("catalog building %q listed twice", name)
		}
		seen[name] = true

		floorSeen := make(map[string]bool, len(b.Floors))
		floors := make([]models.FloorDescriptor, 0, len(b.Floors))
		for _, f := range b.Floors {
			fname := strings.TrimSpace(f.Name)
			if fname == "" {
				return nil, fmt.Errorf("building %q has a floor without a name", name)
			}
			if floorSeen[fname] {
				return nil, fmt.Errorf("building %q lists floor %q twice", name, fname)
			}
			floorSeen[fname] = true

			ref := f.MapReference
			if ref == "" {
				ref = fname + defaultMapExt
			}
			if !filepath.IsAbs(ref) {
				ref = filepath.Join(basePath, name, ref)
			}
			floors = append(floors, models.FloorDescriptor{Name: fname, MapReference: ref})
		}
		out = append(out, models.BuildingDescriptor{
			Name:      name,
			Latitude:  b.Latitude,
			Longitude: b.Longitude,
			Floors:    floors,
		})
	}
	return out, nil
}
