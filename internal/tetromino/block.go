package tetromino

// Color tags a block. The zero value marks geometry-only blocks such as the
// result of RotatedBlocks.
type Color uint8

const (
	ColorNone Color = iota
	ColorOrange
	ColorBlue
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
)

// Colors lists the colors a piece can be dealt with.
var Colors = []Color{ColorOrange, ColorBlue, ColorRed, ColorGreen, ColorYellow, ColorCyan}

func (c Color) String() string {
	switch c {
	case ColorNone:
		return "none"
	case ColorOrange:
		return "orange"
	case ColorBlue:
		return "blue"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorCyan:
		return "cyan"
	default:
		return "unknown"
	}
}

// Block is a single cell. Inside a Tetromino X and Y are offsets from the
// anchor; once locked into a grid only the color is meaningful.
type Block struct {
	X, Y  int
	Color Color
}

func NewBlock(x, y int, c Color) Block {
	return Block{X: x, Y: y, Color: c}
}

// Copy returns a detached block with the same coordinates and color.
func (b Block) Copy() Block {
	return Block{X: b.X, Y: b.Y, Color: b.Color}
}

// Point is an absolute grid position.
type Point struct {
	X, Y int
}
