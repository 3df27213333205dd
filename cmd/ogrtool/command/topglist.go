package command

import (
	"fmt"
	"strings"

	"github.com/planetlabs/ogrtool/internal/storage"
)

type TopgListCmd struct {
	List       string `arg:"" name:"list" help:"Path or URL of a CSV list of layer names and geometry types (e.g. \"buildings,MULTIPOLYGON\")."`
	File       string `short:"f" required:"" help:"Data source holding the listed layers (e.g. a personal geodatabase)."`
	Connection string `short:"c" default:"localhost" help:"Connection name (defined in the profiles file)."`
	Source     string `short:"s" help:"Source SRID to convert from."`
	Transform  string `short:"t" help:"Destination SRID to transform to."`
	Dbname     string `short:"d" help:"PostGIS database to connect to."`
	Encoding   string `short:"e" default:"UTF-8" help:"Client encoding (e.g. latin1, UTF8, cp936)."`
	Geometry   string `short:"g" default:"geometry" help:"Geometry column name."`
}

type layerSpec struct {
	layer        string
	geometryType string
}

func parseLayerSpec(line string) (*layerSpec, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 2 {
		return nil, fmt.Errorf("expected \"layer,TYPE\", got %q", line)
	}
	spec := &layerSpec{
		layer:        strings.TrimSpace(fields[0]),
		geometryType: strings.TrimSpace(fields[1]),
	}
	if spec.layer == "" || spec.geometryType == "" {
		return nil, fmt.Errorf("expected \"layer,TYPE\", got %q", line)
	}
	return spec, nil
}

// Run imports each listed layer, cast to its geometry type, one after the
// other.  Malformed lines and failed imports are reported and skipped.
func (c *TopgListCmd) Run(env *Env) error {
	base := &TopgCmd{
		File:       c.File,
		Connection: c.Connection,
		Source:     c.Source,
		Transform:  c.Transform,
		Dbname:     c.Dbname,
		Encoding:   c.Encoding,
		Geometry:   c.Geometry,
	}

	conn, err := env.connection(base.Connection, base.overrides())
	if err != nil {
		return err
	}
	if _, err := base.importer(conn); err != nil {
		return err
	}

	lines, err := storage.ReadLines(env.context(), c.List)
	if err != nil {
		return NewCommandError("trouble reading layer list %q: %w", c.List, err)
	}

	failed := 0
	for i, line := range lines {
		if env.interrupted() {
			return env.context().Err()
		}
		spec, err := parseLayerSpec(line)
		if err != nil {
			failed++
			env.failure(fmt.Sprintf("entry %d", i+1), err)
			continue
		}

		fmt.Fprintf(env.Stdout, "Importing %s as type %s...\n", spec.layer, spec.geometryType)

		cmd := *base
		cmd.Layer = spec.layer
		cmd.Type = spec.geometryType
		imp, err := cmd.importer(conn)
		if err != nil {
			failed++
			env.failure(spec.layer, err)
			continue
		}
		if err := env.run(env.ogr2ogr(imp.Args()...), env.Stdout); err != nil {
			failed++
			env.failure(spec.layer, err)
		}
	}
	return listResult(failed, len(lines), "layer")
}
