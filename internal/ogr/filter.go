package ogr

import (
	"strings"
)

const (
	LabelFeatureCount = "Feature Count"
	LabelGeometry     = "Geometry"
)

// FieldValues returns the value of every "<label>: <value>" line in ogrinfo
// summary output, in order.  Lines qualified by a column name, such as
// "Geometry (geom): Polygon" for layers with several geometry fields, match
// too.
func FieldValues(output string, label string) []string {
	values := []string{}
	for _, line := range strings.Split(output, "\n") {
		if value, ok := labelValue(strings.TrimSpace(line), label); ok {
			values = append(values, value)
		}
	}
	return values
}

func labelValue(line string, label string) (string, bool) {
	rest, ok := strings.CutPrefix(line, label)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(rest, " (") {
		end := strings.Index(rest, "):")
		if end < 0 {
			return "", false
		}
		rest = rest[end+1:]
	}
	value, ok := strings.CutPrefix(rest, ":")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(value), true
}
