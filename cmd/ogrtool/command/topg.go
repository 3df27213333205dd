// Copyright 2024 Planet Labs PBC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package command

import (
	"github.com/planetlabs/ogrtool/internal/ogr"
	"github.com/planetlabs/ogrtool/internal/optional"
	"github.com/planetlabs/ogrtool/internal/pgconfig"
)

type TopgCmd struct {
	File         string `short:"f" required:"" help:"File to import."`
	Layer        string `short:"l" help:"Layer name to import."`
	Connection   string `short:"c" default:"localhost" help:"Connection name (defined in the profiles file)."`
	Append       bool   `short:"A" help:"Append to existing data table."`
	Source       string `short:"s" help:"Source SRID to convert from."`
	Transform    string `short:"t" help:"Destination SRID to transform to."`
	Assign       string `short:"a" help:"Assign this SRID on table creation."`
	Dbname       string `short:"d" help:"PostGIS database to connect to."`
	Nln          string `short:"n" help:"Destination layer name (can include schema, e.g. 'schema.layername')."`
	Encoding     string `short:"e" default:"UTF-8" help:"Client encoding (e.g. latin1, UTF8, cp936)."`
	Type         string `short:"T" help:"Cast to a new layer type, such as multipolygon or multilinestring."`
	Geometry     string `short:"g" help:"Custom geometry column name."`
	Overwrite    bool   `short:"O" help:"Overwrite current layer(s)."`
	Skipfailures bool   `short:"S" help:"Skip failed row imports."`
}

func (c *TopgCmd) Run(env *Env) error {
	conn, err := env.connection(c.Connection, c.overrides())
	if err != nil {
		return err
	}
	imp, err := c.importer(conn)
	if err != nil {
		return err
	}
	return env.run(env.ogr2ogr(imp.Args()...), env.Stdout)
}

func (c *TopgCmd) overrides() pgconfig.Overrides {
	return pgconfig.Overrides{
		DBName:   optional.String(c.Dbname),
		Encoding: optional.String(c.Encoding),
	}
}

func (c *TopgCmd) importer(conn string) (*ogr.Import, error) {
	srs, err := ogr.NewSRS(c.Source, c.Transform, c.Assign)
	if err != nil {
		return nil, NewCommandError("%w", err)
	}
	imp, err := ogr.NewImport(c.File, conn)
	if err != nil {
		return nil, NewCommandError("%w", err)
	}
	imp.SRS = srs
	imp.Layer = optional.String(c.Layer)
	imp.GeometryType = optional.String(c.Type)
	imp.NewLayerName = optional.String(c.Nln)
	imp.GeometryName = optional.String(c.Geometry)
	imp.Append = c.Append
	imp.Overwrite = c.Overwrite
	imp.SkipFailures = c.Skipfailures
	return imp, nil
}
