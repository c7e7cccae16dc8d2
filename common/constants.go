package common

const (
	// BaseWidth and BaseHeight are the logical screen size.
	BaseWidth  = 1100
	BaseHeight = 740

	// Rows is the number of tile rows that fit the logical screen height.
	Rows     = 16
	TileSize = BaseHeight / Rows

	TPS = 60
)
