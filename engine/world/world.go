// Package world holds the tile map and loads it from JSON grid files.
package world

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nathoo/tilequest/engine/spatial"
	"github.com/nathoo/tilequest/types"
)

// Map is an immutable grid of tile codes indexed [row][col]. A nil or empty
// Map is valid and contains no tiles.
type Map struct {
	ID    string
	tiles [][]types.Tile
	cell  float64
}

// New builds a map from raw tile codes. Rows must all have the same length.
func New(id string, grid [][]int, cell float64) (*Map, error) {
	if cell <= 0 {
		return nil, fmt.Errorf("map %s: cell size must be positive, got %v", id, cell)
	}
	tiles := make([][]types.Tile, len(grid))
	for r, row := range grid {
		if len(row) != len(grid[0]) {
			return nil, fmt.Errorf("map %s: row %d has %d columns, want %d", id, r, len(row), len(grid[0]))
		}
		tiles[r] = make([]types.Tile, len(row))
		for c, v := range row {
			tiles[r][c] = types.Tile(v)
		}
	}
	return &Map{ID: id, tiles: tiles, cell: cell}, nil
}

// Load reads a JSON array of rows of tile codes from path.
func Load(id, path string, cell float64) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map %s: %w", id, err)
	}
	var grid [][]int
	if err := json.Unmarshal(data, &grid); err != nil {
		return nil, fmt.Errorf("decoding map %s: %w", id, err)
	}
	return New(id, grid, cell)
}

// Empty reports whether the map has no tiles.
func (m *Map) Empty() bool {
	return m == nil || len(m.tiles) == 0 || len(m.tiles[0]) == 0
}

// Rows returns the number of rows.
func (m *Map) Rows() int {
	if m == nil {
		return 0
	}
	return len(m.tiles)
}

// Cols returns the number of columns.
func (m *Map) Cols() int {
	if m.Empty() {
		return 0
	}
	return len(m.tiles[0])
}

// CellSize returns the world size of one tile.
func (m *Map) CellSize() float64 {
	if m == nil {
		return 0
	}
	return m.cell
}

// At returns the tile at col, row. ok is false outside the grid.
func (m *Map) At(col, row int) (types.Tile, bool) {
	if m.Empty() || row < 0 || row >= len(m.tiles) || col < 0 || col >= len(m.tiles[0]) {
		return types.TileEmpty, false
	}
	return m.tiles[row][col], true
}

// CellOf returns the grid cell containing v.
func (m *Map) CellOf(v types.Vec) (col, row int) {
	if m == nil || m.cell <= 0 {
		return 0, 0
	}
	return spatial.Cell(v, m.cell)
}

// TileAt returns the tile under world position v.
func (m *Map) TileAt(v types.Vec) (types.Tile, bool) {
	if m.Empty() {
		return types.TileEmpty, false
	}
	return m.At(m.CellOf(v))
}

// Blocked reports whether v lies on a barrier tile.
func (m *Map) Blocked(v types.Vec) bool {
	t, ok := m.TileAt(v)
	return ok && t == types.TileTree
}

// Source loads maps by definition.
type Source interface {
	Load(def types.MapDef) (*Map, error)
}

// DirSource loads map files relative to a directory.
type DirSource struct {
	Dir      string
	CellSize float64
}

// Load reads def.File from the source directory.
func (s DirSource) Load(def types.MapDef) (*Map, error) {
	return Load(def.ID, filepath.Join(s.Dir, def.File), s.CellSize)
}

// MemorySource serves maps from in-memory grids keyed by map ID.
type MemorySource struct {
	Grids    map[string][][]int
	CellSize float64
}

// Load returns the grid registered for def.ID.
func (s MemorySource) Load(def types.MapDef) (*Map, error) {
	grid, ok := s.Grids[def.ID]
	if !ok {
		return nil, fmt.Errorf("map %s: %w", def.ID, os.ErrNotExist)
	}
	return New(def.ID, grid, s.CellSize)
}
