package geo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadObstacles reads every *.geojson file in dir and returns the polygons
// they contain. Unreadable or malformed files are logged and skipped.
func LoadObstacles(dir string, logger *log.Logger) ([]orb.Polygon, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.geojson"))
	if err != nil {
		return nil, fmt.Errorf("list obstacle files: %w", err)
	}

	logger.Debug("loading obstacles", "dir", dir, "files", len(files))

	var all []orb.Polygon
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			logger.Warn("failed to read obstacle file", "file", file, "error", err)
			continue
		}

		polygons, err := ParseObstacles(data)
		if err != nil {
			logger.Warn("failed to parse obstacle file", "file", file, "error", err)
			continue
		}

		logger.Debug("loaded obstacles", "file", filepath.Base(file), "polygons", len(polygons))
		all = append(all, polygons...)
	}

	logger.Info("obstacles loaded", "polygons", len(all))
	return all, nil
}

// ParseObstacles decodes a GeoJSON FeatureCollection and returns its Polygon
// and MultiPolygon geometries. Other geometry types are ignored.
func ParseObstacles(data []byte) ([]orb.Polygon, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode feature collection: %w", err)
	}

	var polygons []orb.Polygon
	for _, feature := range fc.Features {
		switch g := feature.Geometry.(type) {
		case orb.Polygon:
			if len(g) > 0 {
				polygons = append(polygons, g)
			}
		case orb.MultiPolygon:
			for _, p := range g {
				if len(p) > 0 {
					polygons = append(polygons, p)
				}
			}
		}
	}
	return polygons, nil
}
