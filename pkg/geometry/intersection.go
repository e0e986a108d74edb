package geometry

import (
	"fmt"
	"sort"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// MissDistance is the t carried by the sentinel entry a shape reports when
// the ray does not touch it
const MissDistance = -1.0

// Intersection is a single ray-shape crossing at distance T
type Intersection struct {
	T     float64
	Shape Shape // nil for the miss sentinel
}

// NewIntersection creates an intersection record
func NewIntersection(t float64, s Shape) Intersection {
	return Intersection{T: t, Shape: s}
}

// Miss returns the sentinel entry for "no geometric hit"
func Miss() Intersection {
	return Intersection{T: MissDistance}
}

// IsMiss reports whether this is the no-hit sentinel
func (i Intersection) IsMiss() bool {
	return i.Shape == nil
}

// Equal compares t within epsilon and shape identity
func (i Intersection) Equal(other Intersection) bool {
	return core.ApproxEqual(i.T, other.T) && i.Shape == other.Shape
}

// Less orders by t, except that an entry with negative t is never less than
// anything and every non-negative entry is less than a negative one.
func (i Intersection) Less(other Intersection) bool {
	if i.T < 0 {
		return false
	}
	if other.T < 0 {
		return true
	}
	return i.T < other.T
}

func (i Intersection) String() string {
	if i.IsMiss() {
		return "miss"
	}
	return fmt.Sprintf("%s@%.5g", i.Shape.Kind(), i.T)
}

// Intersections is a list of intersection records
type Intersections []Intersection

// SortIntersections sorts xs in place: non-negative t ascending first, then
// negative entries in their original order.
func SortIntersections(xs Intersections) {
	sort.SliceStable(xs, func(i, j int) bool {
		return xs[i].Less(xs[j])
	})
}

// Aggregate collects intersections into a new sorted list
func Aggregate(xs ...Intersection) Intersections {
	out := make(Intersections, len(xs))
	copy(out, xs)
	SortIntersections(out)
	return out
}

// VisibleHit returns the nearest intersection with t >= 0 from a sorted list
func VisibleHit(xs Intersections) (Intersection, bool) {
	if len(xs) == 0 {
		return Intersection{}, false
	}
	first := xs[0]
	if first.T < 0 || first.IsMiss() {
		return Intersection{}, false
	}
	return first, true
}
