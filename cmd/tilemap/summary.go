package main

import (
	"io"

	"github.com/bodgit/tilemap"
	"gopkg.in/yaml.v3"
)

type tileSummary struct {
	GID        int                `yaml:"gid"`
	Width      int                `yaml:"width"`
	Height     int                `yaml:"height"`
	Properties tilemap.Properties `yaml:"properties,omitempty"`
}

type mapSummary struct {
	File       string             `yaml:"file"`
	Columns    int                `yaml:"columns"`
	Rows       int                `yaml:"rows"`
	TileWidth  int                `yaml:"tile_width"`
	TileHeight int                `yaml:"tile_height"`
	Properties tilemap.Properties `yaml:"properties,omitempty"`
	Tiles      []tileSummary      `yaml:"tiles"`
	// Grid is column-major, bottom row first
	Grid [][]int `yaml:"grid,flow"`
}

func summarize(file string, m *tilemap.Map) *mapSummary {
	s := &mapSummary{
		File:       file,
		Columns:    m.Columns(),
		Rows:       m.Rows(),
		TileWidth:  m.TileWidth,
		TileHeight: m.TileHeight,
		Properties: m.Properties,
	}

	for _, tile := range m.Tiles() {
		b := tile.Image.Bounds()
		s.Tiles = append(s.Tiles, tileSummary{
			GID:        tile.ID,
			Width:      b.Dx(),
			Height:     b.Dy(),
			Properties: tile.Properties,
		})
	}

	s.Grid = make([][]int, m.Columns())
	for col := range s.Grid {
		s.Grid[col] = make([]int, m.Rows())
		for row := range s.Grid[col] {
			cell, _ := m.Cell(col, row)
			s.Grid[col][row] = cell.Tile.ID
		}
	}

	return s
}

func writeSummary(w io.Writer, s *mapSummary) error {
	e := yaml.NewEncoder(w)
	e.SetIndent(2)
	if err := e.Encode(s); err != nil {
		return err
	}
	return e.Close()
}
