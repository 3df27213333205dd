package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

var ErrEmptyBbox = errors.New("bbox is empty")

// ParseBbox reads a bounding box in "x_min y_min x_max y_max" notation.  Values
// may be separated by whitespace, commas, or both.
func ParseBbox(bounds string) (orb.Bound, error) {
	values := strings.FieldsFunc(bounds, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(values) == 0 {
		return orb.Bound{}, ErrEmptyBbox
	}
	if len(values) != 4 {
		return orb.Bound{}, fmt.Errorf("please provide 4 values (x_min y_min x_max y_max) as a bbox, got %d", len(values))
	}

	names := [4]string{"x_min", "y_min", "x_max", "y_max"}
	parsed := [4]float64{}
	for i, value := range values {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return orb.Bound{}, fmt.Errorf("trouble parsing %s input as float64: %w", names[i], err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return orb.Bound{}, fmt.Errorf("%s must be a finite number, got %s", names[i], value)
		}
		parsed[i] = f
	}

	bound := orb.Bound{
		Min: orb.Point{parsed[0], parsed[1]},
		Max: orb.Point{parsed[2], parsed[3]},
	}
	if bound.Min.X() > bound.Max.X() {
		return orb.Bound{}, fmt.Errorf("x_min (%s) is greater than x_max (%s)", values[0], values[2])
	}
	if bound.Min.Y() > bound.Max.Y() {
		return orb.Bound{}, fmt.Errorf("y_min (%s) is greater than y_max (%s)", values[1], values[3])
	}
	return bound, nil
}

// BboxArgs renders a bound as the four arguments ogr2ogr expects after -clipsrc.
func BboxArgs(bound orb.Bound) []string {
	return []string{
		formatCoord(bound.Min.X()),
		formatCoord(bound.Min.Y()),
		formatCoord(bound.Max.X()),
		formatCoord(bound.Max.Y()),
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
