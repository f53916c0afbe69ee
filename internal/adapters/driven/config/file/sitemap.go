package file

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/sitemap/internal/core/domain"
	"github.com/custodia-labs/sitemap/internal/core/ports/driven"
)

// Ensure SitemapLoader implements the interface.
var _ driven.SitemapLoader = (*SitemapLoader)(nil)

// sitemapFile is the on-disk layout shared by the TOML and YAML formats:
// a top-level "route" array of route tables.
type sitemapFile struct {
	Routes []routeEntry `toml:"route" yaml:"route"`
}

type routeEntry struct {
	Name    string `toml:"name" yaml:"name"`
	Matcher string `toml:"matcher" yaml:"matcher"`
	Pattern string `toml:"pattern" yaml:"pattern"`
	Param   string `toml:"param" yaml:"param"`
	Action  string `toml:"action" yaml:"action"`
	Target  string `toml:"target" yaml:"target"`
	MIME    string `toml:"mime" yaml:"mime"`
	Status  int    `toml:"status" yaml:"status"`
}

// SitemapLoader reads route definitions from .toml, .yaml or .yml files.
type SitemapLoader struct{}

// NewSitemapLoader creates a sitemap loader.
func NewSitemapLoader() *SitemapLoader {
	return &SitemapLoader{}
}

// Load parses the sitemap file at path. Route positions follow file order.
func (l *SitemapLoader) Load(path string) ([]domain.Route, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sitemap: %w", err)
	}

	var file sitemapFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("%w: parsing %s: %v", domain.ErrInvalidInput, path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: parsing %s: %v", domain.ErrInvalidInput, path, err)
		}
	default:
		return nil, fmt.Errorf("%w: sitemap extension %q", domain.ErrUnsupportedType, ext)
	}

	routes := make([]domain.Route, len(file.Routes))
	for i, e := range file.Routes {
		routes[i] = domain.Route{
			Name:     e.Name,
			Matcher:  domain.MatcherType(e.Matcher),
			Pattern:  e.Pattern,
			Param:    e.Param,
			Action:   domain.Action(e.Action),
			Target:   e.Target,
			MIME:     e.MIME,
			Status:   e.Status,
			Position: i,
		}
	}
	return routes, nil
}
