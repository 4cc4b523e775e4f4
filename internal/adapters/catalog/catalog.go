// Package catalog serves the static coaching-resource catalog. Resources are
// keyed by the metric they remediate and shipped inside the binary, so a
// report can attach drills and videos to each diagnosed issue without any
// network or filesystem dependency at run time.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/okian/throwbench/internal/domain/model"
)

//go:embed resources.yaml
var rawCatalog []byte

// Resource is one remediation pointer attached to a diagnosed metric.
type Resource struct {
	Title   string `yaml:"title" json:"title"`
	Kind    string `yaml:"kind" json:"kind"`
	URL     string `yaml:"url" json:"url"`
	Focus   string `yaml:"focus" json:"focus"`
	Minutes int    `yaml:"minutes,omitempty" json:"minutes,omitempty"`
}

// Catalog maps metrics to their remediation resources.
type Catalog struct {
	byMetric map[model.Metric][]Resource
}

// Parse builds a catalog from YAML keyed by metric name. Unknown metric keys
// are rejected so a typo in the shipped file fails loudly at startup rather
// than silently orphaning resources.
func Parse(raw []byte) (*Catalog, error) {
	var decoded map[string][]Resource
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCatalog, err)
	}

	c := &Catalog{byMetric: make(map[model.Metric][]Resource, len(decoded))}
	for name, resources := range decoded {
		m, err := model.ParseMetric(name)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q", ErrBadCatalog, name)
		}
		c.byMetric[m] = resources
	}
	return c, nil
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the embedded catalog, parsed once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(rawCatalog)
	})
	return defaultCat, defaultErr
}

// Empty returns a catalog with no resources. Lookups succeed and return
// nothing; useful where attaching resources is optional.
func Empty() *Catalog {
	return &Catalog{byMetric: map[model.Metric][]Resource{}}
}

// For returns the resources filed under m, in catalog order.
func (c *Catalog) For(m model.Metric) []Resource {
	return c.byMetric[m]
}

// Len returns the total number of resources across all metrics.
func (c *Catalog) Len() int {
	n := 0
	for _, resources := range c.byMetric {
		n += len(resources)
	}
	return n
}
