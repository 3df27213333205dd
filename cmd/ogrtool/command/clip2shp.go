package command

import (
	"github.com/planetlabs/ogrtool/internal/geo"
	"github.com/planetlabs/ogrtool/internal/ogr"
	"github.com/planetlabs/ogrtool/internal/optional"
	"github.com/planetlabs/ogrtool/internal/pgconfig"
	"github.com/planetlabs/ogrtool/internal/storage"
)

type Clip2ShpCmd struct {
	Bbox       string `short:"b" required:"" help:"Bounding area in dataset units (e.g. \"498438 395921 566498 471747\")."`
	List       string `short:"l" required:"" help:"Path or URL of a list of layer names (one per line) to export as shapefiles."`
	Connection string `short:"c" default:"localhost" help:"Connection name (defined in the profiles file)."`
	Host       string `help:"Database server hostname."`
	User       string `short:"u" help:"Username to connect to database."`
	Dbname     string `short:"d" help:"PostGIS database to connect to."`
	Port       string `short:"p" help:"PostgreSQL server port number."`
	Encoding   string `short:"e" default:"UTF-8" help:"Client encoding (e.g. latin1, UTF8, cp936)."`
}

// Run exports every listed layer.  A failing layer is reported and the rest
// are still exported.
func (c *Clip2ShpCmd) Run(env *Env) error {
	bounds, err := geo.ParseBbox(c.Bbox)
	if err != nil {
		return NewCommandError("invalid bbox %q: %w", c.Bbox, err)
	}

	conn, err := env.connection(c.Connection, pgconfig.Overrides{
		Host:     optional.String(c.Host),
		User:     optional.String(c.User),
		Port:     optional.String(c.Port),
		DBName:   optional.String(c.Dbname),
		Encoding: optional.String(c.Encoding),
	})
	if err != nil {
		return err
	}

	layers, err := storage.ReadLines(env.context(), c.List)
	if err != nil {
		return NewCommandError("trouble reading layer list %q: %w", c.List, err)
	}

	failed := 0
	for _, layer := range layers {
		if env.interrupted() {
			return env.context().Err()
		}
		if err := env.run(env.ogr2ogr(ogr.ClipLayerArgs(layer, conn, bounds)...), env.Stdout); err != nil {
			failed++
			env.failure(layer, err)
		}
	}
	return listResult(failed, len(layers), "layer")
}
