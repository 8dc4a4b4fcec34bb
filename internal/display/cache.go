package display

// Field identifies one independently-redrawn region of the screen.
type Field int

const (
	FieldHours Field = iota
	FieldMinutes
	FieldSeconds
	FieldAMPM
	FieldDate
	FieldPace
	FieldIcon
	FieldMenuClock
	FieldCursor
)

// DiffCache remembers the last value rendered for each field. A field
// with no cached value is "unknown" and always redraws; Invalidate
// resets every field to unknown so the next pass repaints everything.
//
// Mode flags that affect a field's rendering (e.g. 12h/24h) must be
// folded into the value string by the caller.
type DiffCache struct {
	vals map[Field]string
}

// NewDiffCache creates an empty cache; every field starts unknown.
func NewDiffCache() *DiffCache {
	return &DiffCache{vals: make(map[Field]string)}
}

// Swap compares v against the cached value for f. If it differs (or the
// field is unknown), the cache is updated and changed is true; prev is
// the previously rendered value, for erasing.
func (c *DiffCache) Swap(f Field, v string) (prev string, changed bool) {
	prev, known := c.vals[f]
	if known && prev == v {
		return prev, false
	}
	c.vals[f] = v
	return prev, true
}

// Invalidate forgets all cached values, forcing a full redraw.
func (c *DiffCache) Invalidate() {
	c.vals = make(map[Field]string)
}
