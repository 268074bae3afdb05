package tetromino

// Shape is one of the seven canonical pieces.
type Shape uint8

const (
	ShapeL Shape = iota
	ShapeBox
	ShapeZ
	ShapeT
	ShapeStick
	ShapeInverseL
	ShapeInverseZ
)

// Shapes lists every shape in table order.
var Shapes = []Shape{ShapeL, ShapeBox, ShapeZ, ShapeT, ShapeStick, ShapeInverseL, ShapeInverseZ}

// Offset is a local (x, y) offset from a piece anchor.
type Offset struct {
	X, Y int
}

// shapeOffsets[shape] -> the four spawn offsets, all inside a 4x4 box
// touching column 0 and row 0.
var shapeOffsets = [...][4]Offset{
	ShapeL:        {{0, 0}, {0, 1}, {0, 2}, {1, 2}},
	ShapeBox:      {{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	ShapeZ:        {{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	ShapeT:        {{0, 0}, {1, 0}, {2, 0}, {1, 1}},
	ShapeStick:    {{0, 0}, {0, 1}, {0, 2}, {0, 3}},
	ShapeInverseL: {{1, 0}, {1, 1}, {1, 2}, {0, 2}},
	ShapeInverseZ: {{1, 0}, {2, 0}, {0, 1}, {1, 1}},
}

// Offsets returns the spawn offsets of s.
func (s Shape) Offsets() [4]Offset {
	return shapeOffsets[s]
}

// Valid reports whether s is one of the seven shapes.
func (s Shape) Valid() bool {
	return int(s) < len(shapeOffsets)
}

func (s Shape) String() string {
	switch s {
	case ShapeL:
		return "L"
	case ShapeBox:
		return "Box"
	case ShapeZ:
		return "Z"
	case ShapeT:
		return "T"
	case ShapeStick:
		return "Stick"
	case ShapeInverseL:
		return "InverseL"
	case ShapeInverseZ:
		return "InverseZ"
	default:
		return "Unknown"
	}
}
