package mapdata

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/geom"
)

// source abstracts where a map bundle's JSON bytes come from, the way
// mine-and-die/server/effects/catalog/resolver.go's source interface lets
// the effect catalog load from either a file or an in-memory fixture.
type source interface {
	Load() ([]byte, error)
	Path() string
}

type fileSource struct {
	path string
}

func (f fileSource) Load() ([]byte, error) { return os.ReadFile(f.path) }
func (f fileSource) Path() string          { return f.path }

type bytesSource struct {
	label string
	data  []byte
}

func (b bytesSource) Load() ([]byte, error) { return b.data, nil }
func (b bytesSource) Path() string          { return b.label }

// Resolver merges one or more designer-authored map bundle sources into a
// stable, ordered list of Maps.
type Resolver struct {
	sources []source
}

// NewResolver constructs an empty Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// AddFile registers a JSON bundle file to be merged on Resolve.
func (r *Resolver) AddFile(path string) {
	r.sources = append(r.sources, fileSource{path: path})
}

// AddBytes registers an in-memory JSON bundle (primarily for tests).
func (r *Resolver) AddBytes(label string, data []byte) {
	r.sources = append(r.sources, bytesSource{label: label, data: data})
}

// Resolve loads every registered source, in registration order, and
// decodes each entry into a Map. It returns an error identifying the
// offending source on the first malformed document; callers that want a
// best-effort catalog should call Resolve per-source instead.
func (r *Resolver) Resolve() ([]Map, error) {
	var out []Map
	for _, src := range r.sources {
		raw, err := src.Load()
		if err != nil {
			return nil, fmt.Errorf("mapdata: load %s: %w", src.Path(), err)
		}
		var defs FileDefinitions
		if err := json.Unmarshal(raw, &defs); err != nil {
			return nil, fmt.Errorf("mapdata: parse %s: %w", src.Path(), err)
		}
		for i, def := range defs {
			m, err := decodeEntry(def)
			if err != nil {
				return nil, fmt.Errorf("mapdata: %s entry %d: %w", src.Path(), i, err)
			}
			out = append(out, m)
		}
	}
	return out, nil
}

// decodeEntry converts a designer-authored EntryDefinition into the same
// compact (dims, door, packed bits) tuple the compiled-in builtin maps use.
func decodeEntry(def EntryDefinition) (Map, error) {
	d := Dims{X: def.SizeX, Y: def.SizeY, Z: def.SizeZ}
	if d.X <= 0 || d.Y <= 0 || d.Z <= 0 {
		return Map{}, fmt.Errorf("invalid dimensions %+v", d)
	}
	if len(def.Layers) != d.Z {
		return Map{}, fmt.Errorf("expected %d layers, got %d", d.Z, len(def.Layers))
	}
	for z, layer := range def.Layers {
		if len(layer) != d.Y {
			return Map{}, fmt.Errorf("layer %d: expected %d rows, got %d", z, d.Y, len(layer))
		}
		for y, row := range layer {
			if len(row) != d.X {
				return Map{}, fmt.Errorf("layer %d row %d: expected length %d, got %d", z, y, d.X, len(row))
			}
		}
	}
	door := geom.Vec3{X: def.DoorX, Y: def.DoorY, Z: def.DoorZ}
	bits := EncodeBits(d, func(x, y, z int) bool {
		if x == door.X && y == door.Y && z == door.Z {
			return true
		}
		return def.Layers[z][y][x] != '#'
	})
	if !DecodeBit(d, bits, door.X, door.Y, door.Z) {
		return Map{}, fmt.Errorf("door %v not walkable", door)
	}
	return Map{Name: def.Name, Dims: d, Door: door, Bits: bits}, nil
}
