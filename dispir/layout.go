package dispir

// Spacing is a length per side in px.
type Spacing struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

func Uniform(v float64) Spacing {
	return Spacing{Top: v, Right: v, Bottom: v, Left: v}
}

type FlexDirection string

const (
	Row           FlexDirection = "row"
	Column        FlexDirection = "column"
	RowReverse    FlexDirection = "row_reverse"
	ColumnReverse FlexDirection = "column_reverse"
)

type LayoutKind string

const (
	LayoutNone LayoutKind = "none"
	LayoutFlex LayoutKind = "flex"
)

// NodeLayout describes how a node arranges its children. Leaves have kind
// none but still carry their own padding and margin.
type NodeLayout struct {
	Kind      LayoutKind    `yaml:"kind"`
	Direction FlexDirection `yaml:"direction,omitempty"`
	Wrap      bool          `yaml:"wrap,omitempty"`
	Padding   Spacing       `yaml:"padding"`
	Margin    Spacing       `yaml:"margin"`
	Gap       float64       `yaml:"gap,omitempty"`
}

type ShapeKind string

const (
	ShapeRect   ShapeKind = "rect"
	ShapeCircle ShapeKind = "circle"
)

// Corners are per corner radii in px.
type Corners struct {
	TopLeft     float64 `yaml:"top_left"`
	TopRight    float64 `yaml:"top_right"`
	BottomLeft  float64 `yaml:"bottom_left"`
	BottomRight float64 `yaml:"bottom_right"`
}

// NodeShape is the outline drawn for a node. Circle nodes draw a circle
// beside their label in addition to the rounded box.
type NodeShape struct {
	Kind         ShapeKind `yaml:"kind"`
	Radii        Corners   `yaml:"radii"`
	CircleRadius float64   `yaml:"circle_radius,omitempty"`
}

const DefaultRadius = 4.
