package extraction

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/poofware/wayfinding-service/internal/geometry"
	"github.com/poofware/wayfinding-service/internal/models"
	"github.com/poofware/wayfinding-service/internal/utils"
)

// SidecarExt is the extension of the text-layer file kept next to a map.
const SidecarExt = ".yaml"

// TextLayer is the on-disk shape of a sidecar file: the page size in page
// units and every positioned text span found on the page.
type TextLayer struct {
	Page struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"page"`
	Spans []TextSpan `yaml:"spans"`
}

// TextSpan is one piece of text and its anchor in page units.
type TextSpan struct {
	Text     string  `yaml:"text"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	FontSize float64 `yaml:"font_size,omitempty"`
}

// SidecarExtractor reads "<map>.yaml" next to each map reference and
// classifies its spans into rooms and entrances.
type SidecarExtractor struct {
	// ReadFile defaults to os.ReadFile.
	ReadFile func(name string) ([]byte, error)
}

func NewSidecarExtractor() *SidecarExtractor {
	return &SidecarExtractor{ReadFile: os.ReadFile}
}

// SidecarPath returns the text-layer path for a map reference.
func SidecarPath(mapReference string) string {
	return strings.TrimSuffix(mapReference, filepath.Ext(mapReference)) + SidecarExt
}

func (s *SidecarExtractor) Extract(ctx context.Context, mapReference, floorName string) (*FloorData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	readFile := s.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}

	path := SidecarPath(mapReference)
	raw, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", utils.ErrExtractionFailed, path, err)
	}

	var layer TextLayer
	if err := yaml.Unmarshal(raw, &layer); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", utils.ErrExtractionFailed, path, err)
	}
	data, err := ClassifyLayer(&layer)
	if err != nil {
		return nil, fmt.Errorf("%w: floor %s: %v", utils.ErrExtractionFailed, floorName, err)
	}
	return data, nil
}

// ClassifyLayer normalizes every span against the page size and sorts it
// into rooms and entrances. Entrance labels win over room patterns; spans
// matching neither are dropped.
func ClassifyLayer(layer *TextLayer) (*FloorData, error) {
	out := &FloorData{}
	for _, span := range layer.Spans {
		x, y, ok := geometry.NormalizePagePoint(span.X, span.Y, layer.Page.Width, layer.Page.Height)
		if !ok {
			return nil, fmt.Errorf("invalid page size %vx%v", layer.Page.Width, layer.Page.Height)
		}
		text := strings.TrimSpace(span.Text)
		switch {
		case IsEntranceText(text):
			out.Entrances = append(out.Entrances, models.Entrance{X: x, Y: y, Label: text})
		case IsRoomText(text):
			out.Rooms = append(out.Rooms, models.Room{ID: text, X: x, Y: y})
		}
	}
	return out, nil
}
