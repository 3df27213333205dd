package ogr

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/planetlabs/ogrtool/internal/geo"
	"github.com/planetlabs/ogrtool/internal/optional"
)

const (
	DriverShapefile  = "ESRI Shapefile"
	DriverPostgreSQL = "PostgreSQL"

	ShapefileExt  = ".shp"
	ClipSuffix    = "_clip"
	ProjectSuffix = "_project"

	shapefileEncoding = "ENCODING=UTF-8"
	pgPrefix          = "PG:"
)

var ErrRequired = errors.New("missing required value")

// OutputPath places a shapefile next to the input, named after the input's
// base name with the suffix appended.
func OutputPath(input string, suffix string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(input), base+suffix+ShapefileExt)
}

// PGSource formats a libpq connection string as an OGR PostgreSQL datasource.
func PGSource(conn string) string {
	return pgPrefix + conn
}

// InfoArgs summarizes every layer of a datasource, or only the named one.
func InfoArgs(file string, layer optional.Value[string]) []string {
	args := []string{"-so", "-al", file}
	if name, ok := layer.Get(); ok {
		args = append(args, name)
	}
	return args
}

type Clip struct {
	Input  string
	Bounds orb.Bound
}

func NewClip(input string, bounds orb.Bound) (*Clip, error) {
	if input == "" {
		return nil, fmt.Errorf("%w: input file", ErrRequired)
	}
	return &Clip{Input: input, Bounds: bounds}, nil
}

func (c *Clip) Output() string {
	return OutputPath(c.Input, ClipSuffix)
}

func (c *Clip) Args() []string {
	args := []string{"-f", DriverShapefile, c.Output(), c.Input, "-clipsrc"}
	return append(args, geo.BboxArgs(c.Bounds)...)
}

// ClipLayerArgs exports one PostGIS layer, clipped to bounds, as <layer>.shp
// in the working directory.
func ClipLayerArgs(layer string, conn string, bounds orb.Bound) []string {
	args := []string{"-f", DriverShapefile, layer + ShapefileExt, PGSource(conn), layer, "-clipsrc"}
	args = append(args, geo.BboxArgs(bounds)...)
	return append(args, "-lco", shapefileEncoding)
}

type Reproject struct {
	Input string
	SRS   SRS
}

func NewReproject(input string, srs SRS) (*Reproject, error) {
	if input == "" {
		return nil, fmt.Errorf("%w: input file", ErrRequired)
	}
	return &Reproject{Input: input, SRS: srs}, nil
}

func (r *Reproject) Output() string {
	return OutputPath(r.Input, ProjectSuffix)
}

func (r *Reproject) Args() []string {
	args := []string{"-f", DriverShapefile}
	args = append(args, r.SRS.Args()...)
	return append(args, r.Output(), r.Input)
}

// Import loads a file into PostGIS.
type Import struct {
	File       string
	Connection string

	Layer        optional.Value[string]
	GeometryType optional.Value[string]
	NewLayerName optional.Value[string]
	GeometryName optional.Value[string]

	Overwrite    bool
	Append       bool
	SkipFailures bool

	SRS SRS
}

func NewImport(file string, conn string) (*Import, error) {
	if file == "" {
		return nil, fmt.Errorf("%w: input file", ErrRequired)
	}
	if conn == "" {
		return nil, fmt.Errorf("%w: connection string", ErrRequired)
	}
	return &Import{File: file, Connection: conn}, nil
}

func (i *Import) Args() []string {
	args := []string{"-f", DriverPostgreSQL}
	args = append(args, i.SRS.Args()...)
	args = append(args, PGSource(i.Connection), i.File)
	if layer, ok := i.Layer.Get(); ok {
		args = append(args, layer)
	}
	if nlt, ok := i.GeometryType.Get(); ok {
		args = append(args, "-nlt", nlt)
	}
	if nln, ok := i.NewLayerName.Get(); ok {
		args = append(args, "-nln", nln)
	}
	if name, ok := i.GeometryName.Get(); ok {
		args = append(args, "-lco", "GEOMETRY_NAME="+name)
	}
	if i.Overwrite {
		args = append(args, "-overwrite")
	}
	if i.Append {
		args = append(args, "-append")
	}
	if i.SkipFailures {
		args = append(args, "-skipfailures")
	}
	return args
}
