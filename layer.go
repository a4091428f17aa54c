package tilemap

// maxCells bounds the number of grid positions a map may declare.
const maxCells = 1 << 24

// MergeLayers combines every <layer> of the map element root into one
// height by width grid of global ids, top row first. Layers are applied in
// document order and an empty (zero) tile never replaces an earlier tile.
func MergeLayers(root *Node) ([][]int, error) {
	width, err := root.RequireIntAttr("width")
	if err != nil {
		return nil, err
	}
	height, err := root.RequireIntAttr("height")
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 || width > maxCells/height {
		return nil, formatErrorf("invalid map dimensions: %dx%d", width, height)
	}

	layers, err := layerTiles(root, width*height)
	if err != nil {
		return nil, err
	}

	grid := make([][]int, height)
	for i := range grid {
		grid[i] = make([]int, width)
	}

	for _, tiles := range layers {
		i := 0
		for _, row := range grid {
			for col := range row {
				gid, err := tiles[i].IntAttr("gid", 0)
				if err != nil {
					return nil, err
				}
				if gid > 0 {
					row[col] = gid
				}
				i++
			}
		}
	}

	return grid, nil
}

// layerTiles returns the <tile> entries of every layer, each holding at
// least n entries.
func layerTiles(root *Node, n int) ([][]*Node, error) {
	var layers [][]*Node

	for _, layer := range root.Children("layer") {
		name := layer.Attr("name", "")

		data := layer.First("data")
		if data == nil {
			return nil, formatErrorf("layer %q has no data", name)
		}

		// TODO Support base64 and CSV encoded data, optionally compressed
		if encoding := data.Attr("encoding", ""); encoding != "" {
			return nil, formatErrorf("layer %q uses unsupported %s encoding", name, encoding)
		}
		if compression := data.Attr("compression", ""); compression != "" {
			return nil, formatErrorf("layer %q uses unsupported %s compression", name, compression)
		}

		tiles := data.Children("tile")
		if len(tiles) == 0 && data.Text(false) != "" {
			return nil, formatErrorf("layer %q uses unsupported encoded data", name)
		}
		if len(tiles) < n {
			return nil, formatErrorf("layer %q has %d tiles, expected %d", name, len(tiles), n)
		}

		layers = append(layers, tiles)
	}

	if len(layers) == 0 {
		return nil, formatErrorf("map has no layers")
	}

	return layers, nil
}

func checkOccupied(grid [][]int) error {
	for r, row := range grid {
		for c, gid := range row {
			if gid <= 0 {
				return formatErrorf("all tile locations must be occupied, row %d column %d is empty", r, c)
			}
		}
	}
	return nil
}

// Rotate turns a grid stored top row first into one stored column first
// with each column running bottom to top. The result is a new grid; m is
// left untouched.
func Rotate(m [][]int) [][]int {
	if len(m) == 0 {
		return nil
	}

	rows, cols := len(m), len(m[0])
	out := make([][]int, cols)
	for i := range out {
		out[i] = make([]int, rows)
		for j := range out[i] {
			out[i][j] = m[rows-1-j][i]
		}
	}

	return out
}

// BuildGrid merges the layers of the map element root, checks that every
// position holds a tile and returns the grid rotated into column-major,
// bottom-up order.
func BuildGrid(root *Node) ([][]int, error) {
	grid, err := MergeLayers(root)
	if err != nil {
		return nil, err
	}

	if err := checkOccupied(grid); err != nil {
		return nil, err
	}

	return Rotate(grid), nil
}
