// internal/preset/preset.go
//
// Section presets: ready-made block lists for new sections.
//
// Context
// -------
// When an editor adds a section it may start from a preset ("hero
// centered", "pricing three columns", ...) instead of an empty block
// list.  Presets are declared in `conf/presets.yaml` and loaded into a
// Catalog at boot.  Watch reloads the file when operators edit it, so no
// restart is needed to ship a new preset.
//
// Workflow
// --------
//   - Parse decodes the YAML and checks ids and block types.
//   - Lookup hands out a deep copy with fresh block ids, so two sections
//     created from one preset never share ids.
//   - Apply writes the blocks and layout into a section content map.
//
// Notes
// -----
//   - A reload that fails to parse keeps the previous catalog and logs
//     the error.
package preset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/yanizio/sitekit/internal/section"
)

// ErrUnknown is returned when a preset id is not in the catalog.
var ErrUnknown = errors.New("preset: unknown id")

// Preset mirrors one entry of presets.yaml.
type Preset struct {
	ID          string           `yaml:"id"          json:"id"`
	Name        string           `yaml:"name"        json:"name"`
	Description string           `yaml:"description" json:"description,omitempty"`
	Category    string           `yaml:"category"    json:"category"`
	Blocks      []map[string]any `yaml:"blocks"      json:"blocks"`
	Layout      map[string]any   `yaml:"layout"      json:"layout,omitempty"`
}

type file struct {
	Presets []Preset `yaml:"presets"`
}

// Parse decodes raw YAML into presets keyed by id.
func Parse(raw []byte) (map[string]Preset, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	out := make(map[string]Preset, len(f.Presets))
	for i, p := range f.Presets {
		if p.ID == "" {
			return nil, fmt.Errorf("preset #%d: missing id", i+1)
		}
		if _, dup := out[p.ID]; dup {
			return nil, fmt.Errorf("preset %q: duplicate id", p.ID)
		}
		for j, b := range p.Blocks {
			if t, _ := b["type"].(string); t == "" {
				return nil, fmt.Errorf("preset %q block #%d: missing type", p.ID, j+1)
			}
		}
		out[p.ID] = p
	}
	return out, nil
}

// Catalog is a concurrency-safe set of presets.
type Catalog struct {
	mu   sync.RWMutex
	byID map[string]Preset
	path string
}

// New returns a catalog holding presets.
func New(presets map[string]Preset) *Catalog {
	if presets == nil {
		presets = map[string]Preset{}
	}
	return &Catalog{byID: presets}
}

// Load reads path.  A missing file yields an empty catalog.
func Load(path string) (*Catalog, error) {
	c := New(nil)
	c.path = path
	if err := c.reload(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) reload() error {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		return err
	}
	m, err := Parse(raw)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.byID = m
	c.mu.Unlock()
	zap.S().Infow("presets loaded", "file", c.path, "count", len(m))
	return nil
}

// Lookup returns a copy of the preset with fresh block ids.
func (c *Catalog) Lookup(id string) (Preset, bool) {
	c.mu.RLock()
	p, ok := c.byID[id]
	c.mu.RUnlock()
	if !ok {
		return Preset{}, false
	}
	cp := p
	cp.Layout = section.CloneMap(p.Layout)
	cp.Blocks = make([]map[string]any, len(p.Blocks))
	for i, b := range p.Blocks {
		nb := section.CloneMap(b)
		nb["id"] = uuid.NewString()
		nb["order"] = float64(i)
		cp.Blocks[i] = nb
	}
	return cp, true
}

// IDs lists preset ids, sorted.
func (c *Catalog) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.byID))
	for id := range c.byID {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Apply copies preset id into content.  blocks is replaced; layout is
// set only when the preset declares one.
func (c *Catalog) Apply(id string, content map[string]any) error {
	p, ok := c.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknown, id)
	}
	blocks := make([]any, len(p.Blocks))
	for i, b := range p.Blocks {
		blocks[i] = b
	}
	content["blocks"] = blocks
	if p.Layout != nil {
		content["layout"] = p.Layout
	}
	return nil
}

// Watch reloads the catalog when its file changes, until ctx ends.  The
// parent directory is watched so editors that replace the file on save
// are picked up too.
func (c *Catalog) Watch(ctx context.Context) error {
	if c.path == "" {
		return errors.New("preset: catalog has no backing file")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(c.path)); err != nil {
		w.Close()
		return err
	}
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(c.path) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := c.reload(); err != nil {
					zap.S().Errorw("preset reload failed", "file", c.path, "err", err)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				zap.S().Warnw("preset watcher error", "err", err)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}
