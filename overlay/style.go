package overlay

import "strconv"

// Rect is an axis-aligned rectangle in overlay coordinates.
type Rect struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Style is one positioning rule of a StyleSheet.
type Style struct {
	id     string
	Rect   Rect
	Hidden bool
}

// ID returns the rule's selector id, "px<index>".
func (s *Style) ID() string {
	return s.id
}

// StyleSheet owns the positioning rules of one surface. Rules are never
// deleted; elements that own them are recycled instead.
type StyleSheet struct {
	rules    []*Style
	disabled bool
}

// NewStyle appends a fresh rule and returns it.
func (s *StyleSheet) NewStyle() *Style {
	st := &Style{id: "px" + strconv.Itoa(len(s.rules))}
	s.rules = append(s.rules, st)
	return st
}

// Len returns the number of rules.
func (s *StyleSheet) Len() int {
	return len(s.rules)
}

// Disabled reports whether the sheet is switched off.
func (s *StyleSheet) Disabled() bool {
	return s.disabled
}

// SetDisabled switches the sheet off (nothing is drawn or hit) or back on.
func (s *StyleSheet) SetDisabled(disabled bool) {
	s.disabled = disabled
}
