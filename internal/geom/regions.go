package geom

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Extensions lists the boundary formats LoadRegions understands.
var Extensions = []string{".kml", ".geojson", ".json", ".csv", ".wkt"}

// LoadRegions parses a boundary file into named outlines, in file order.
func LoadRegions(path string) ([]Outline, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".kml":
		return LoadKML(path)
	case ".geojson", ".json":
		return LoadGeoJSON(path)
	case ".csv":
		return LoadCSV(path)
	case ".wkt":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read wkt file", goerr.V("path", path))
		}
		return ParseWKTLines(string(data))
	}
	return nil, goerr.New("unsupported boundary format", goerr.V("path", path), goerr.V("ext", ext))
}

// Supported reports whether path has a boundary extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}
