package levels

import (
	"fmt"
	"io/fs"

	"github.com/lafriks/go-tiled"
)

// PickupGroup is the object group whose objects become texture-matched
// placements, e.g. stars.
const PickupGroup = "pickups"

// LoadTMX reads a Tiled map. Every non-empty cell of every tile layer becomes
// a placement whose index is the tile's id inside its tileset. Objects in the
// pickups group become tile-less placements carrying their "texture"
// property.
func LoadTMX(fsys fs.FS, name string) ([]TilePlacement, error) {
	levelMap, err := tiled.LoadFile(name, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("levels: load TMX %s: %w", name, err)
	}

	var out []TilePlacement
	for _, layer := range levelMap.Layers {
		if layer == nil {
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				i := y*levelMap.Width + x
				if i >= len(layer.Tiles) {
					break
				}
				tile := layer.Tiles[i]
				if tile == nil || tile.IsNil() {
					continue
				}
				out = append(out, TilePlacement{
					TileIndex: int(tile.ID),
					GridX:     x,
					GridY:     y,
					Scale:     DefaultScale,
				})
			}
		}
	}

	if levelMap.TileWidth <= 0 || levelMap.TileHeight <= 0 {
		return out, nil
	}
	for _, og := range levelMap.ObjectGroups {
		if og == nil || og.Name != PickupGroup {
			continue
		}
		for _, o := range og.Objects {
			out = append(out, TilePlacement{
				TileIndex:   -1,
				GridX:       int(o.X) / levelMap.TileWidth,
				GridY:       int(o.Y) / levelMap.TileHeight,
				Scale:       DefaultScale,
				TexturePath: o.Properties.GetString("texture"),
			})
		}
	}
	return out, nil
}
