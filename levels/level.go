package levels

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strconv"
	"strings"
)

const (
	DefaultScale = 1.0
	MinScale     = 0.1
)

// TilePlacement is one placed tile: which atlas entry, which grid cell and
// how large.
type TilePlacement struct {
	TileIndex   int     `json:"tile_index"`
	GridX       int     `json:"x"`
	GridY       int     `json:"y"`
	Scale       float64 `json:"scale"`
	TexturePath string  `json:"texture_path,omitempty"`
}

// EffectiveScale floors the scale at MinScale.
func (p TilePlacement) EffectiveScale() float64 {
	if p.Scale < MinScale {
		return MinScale
	}
	return p.Scale
}

// rawPlacement tolerates missing fields and fractional numbers from hand
// edited files.
type rawPlacement struct {
	TileIndex   *float64 `json:"tile_index"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Scale       *float64 `json:"scale"`
	TexturePath string   `json:"texture_path"`
}

// DecodeJSON decodes a JSON array of placements. Missing tile_index becomes
// -1, which the world drops; missing scale becomes 1.0.
func DecodeJSON(data []byte) ([]TilePlacement, error) {
	var raw []rawPlacement
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make([]TilePlacement, 0, len(raw))
	for _, r := range raw {
		p := TilePlacement{
			TileIndex:   -1,
			GridX:       int(r.X),
			GridY:       int(r.Y),
			Scale:       DefaultScale,
			TexturePath: r.TexturePath,
		}
		if r.TileIndex != nil {
			p.TileIndex = int(*r.TileIndex)
		}
		if r.Scale != nil {
			p.Scale = *r.Scale
		}
		if p.Scale < MinScale {
			p.Scale = MinScale
		}
		out = append(out, p)
	}
	return out, nil
}

// EncodeJSON writes placements in the format DecodeJSON reads.
func EncodeJSON(w io.Writer, placements []TilePlacement) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if placements == nil {
		placements = []TilePlacement{}
	}
	return enc.Encode(placements)
}

var gridNameRe = regexp.MustCompile(`(?i)^level\d+[._]data\.csv$`)

// IsGridName reports whether name follows the editor's levelN_data.csv
// naming, which holds a tile grid rather than placement rows.
func IsGridName(name string) bool {
	return gridNameRe.MatchString(path.Base(name))
}

// DecodeCSVGrid reads an editor grid: one CSV row per tile row, one tile
// index per cell, -1 for empty. Cells that are not integers are skipped.
func DecodeCSVGrid(data []byte) ([]TilePlacement, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var out []TilePlacement
	for y := 0; ; y++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("levels: csv grid row %d: %w", y, err)
		}
		for x, cell := range rec {
			idx, err := strconv.Atoi(strings.TrimSpace(cell))
			if err != nil || idx < 0 {
				continue
			}
			out = append(out, TilePlacement{TileIndex: idx, GridX: x, GridY: y, Scale: DefaultScale})
		}
	}
	return out, nil
}

// DecodeCSVRows reads legacy placement rows: tile_index,x,y[,scale].
// Rows that do not parse (headers, comments, short rows) are skipped.
func DecodeCSVRows(data []byte) ([]TilePlacement, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comment = '#'

	var out []TilePlacement
	for line := 1; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("levels: csv row %d: %w", line, err)
		}
		if len(rec) < 3 || len(rec) > 4 {
			continue
		}
		nums := make([]float64, len(rec))
		ok := true
		for i, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				ok = false
				break
			}
			nums[i] = v
		}
		if !ok {
			continue
		}
		p := TilePlacement{
			TileIndex: int(nums[0]),
			GridX:     int(nums[1]),
			GridY:     int(nums[2]),
			Scale:     DefaultScale,
		}
		if len(nums) == 4 {
			p.Scale = nums[3]
		}
		if p.Scale < MinScale {
			p.Scale = MinScale
		}
		out = append(out, p)
	}
	return out, nil
}
