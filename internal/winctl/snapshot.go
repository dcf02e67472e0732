package winctl

// Point is a window's top-left screen position.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Size is a window's dimensions in points.
type Size struct {
	Width  int `yaml:"width"  json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Snapshot is the observed state of one window at enumeration time. Index is
// the 1-based System Events window ordinal; it is process-local and unstable
// across window creation and destruction. Position and Size are nil when the
// corresponding query failed.
type Snapshot struct {
	Index     int    `yaml:"index"              json:"index"`
	Title     string `yaml:"title"              json:"title"`
	Position  *Point `yaml:"position,omitempty" json:"position,omitempty"`
	Size      *Size  `yaml:"size,omitempty"     json:"size,omitempty"`
	Minimized bool   `yaml:"minimized"          json:"minimized"`
}
