package ogr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/planetlabs/ogrtool/internal/optional"
)

// EPSG is a numeric spatial reference system identifier.
type EPSG int

const epsgPrefix = "EPSG:"

// ParseEPSG accepts a bare code ("4326") or a prefixed one ("EPSG:4326").
func ParseEPSG(value string) (EPSG, error) {
	code := strings.TrimSpace(value)
	if len(code) > len(epsgPrefix) && strings.EqualFold(code[:len(epsgPrefix)], epsgPrefix) {
		code = code[len(epsgPrefix):]
	}
	n, err := strconv.Atoi(code)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid EPSG code %q", value)
	}
	return EPSG(n), nil
}

func (e EPSG) String() string {
	return fmt.Sprintf("%s%d", epsgPrefix, int(e))
}

// SRS holds the source, target and assigned reference systems of a conversion.
type SRS struct {
	Source    optional.Value[EPSG]
	Transform optional.Value[EPSG]
	Assign    optional.Value[EPSG]
}

// NewSRS parses the three codes, treating empty strings as absent.
func NewSRS(source string, transform string, assign string) (SRS, error) {
	srs := SRS{}
	fields := []struct {
		name  string
		value string
		dest  *optional.Value[EPSG]
	}{
		{"source", source, &srs.Source},
		{"transform", transform, &srs.Transform},
		{"assign", assign, &srs.Assign},
	}
	for _, field := range fields {
		if field.value == "" {
			continue
		}
		code, err := ParseEPSG(field.value)
		if err != nil {
			return SRS{}, fmt.Errorf("%s SRID: %w", field.name, err)
		}
		*field.dest = optional.Some(code)
	}
	return srs, nil
}

// Args returns -s_srs, -t_srs and -a_srs fragments, in that order, for the
// codes that are set.
func (s SRS) Args() []string {
	args := []string{}
	if code, ok := s.Source.Get(); ok {
		args = append(args, "-s_srs", code.String())
	}
	if code, ok := s.Transform.Get(); ok {
		args = append(args, "-t_srs", code.String())
	}
	if code, ok := s.Assign.Get(); ok {
		args = append(args, "-a_srs", code.String())
	}
	return args
}
