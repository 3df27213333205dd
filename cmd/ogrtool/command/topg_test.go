package command_test

import (
	"github.com/planetlabs/ogrtool/cmd/ogrtool/command"
	"github.com/planetlabs/ogrtool/internal/pgconfig"
)

func (s *Suite) TestTopgMinimal() {
	cmd := &command.TopgCmd{File: "parcels.shp", Connection: "localhost", Encoding: "UTF-8"}

	s.Require().NoError(cmd.Run(s.env))
	s.assertCall(0, "ogr2ogr",
		"-f", "PostgreSQL",
		"PG:host=db1 user=geo options='-c client_encoding=UTF-8'",
		"parcels.shp",
	)
}

func (s *Suite) TestTopgAllFlags() {
	cmd := &command.TopgCmd{
		File:         "file.mdb",
		Layer:        "buildings",
		Connection:   "localhost",
		Append:       true,
		Source:       "27700",
		Transform:    "4326",
		Assign:       "EPSG:4326",
		Dbname:       "gis",
		Nln:          "staging.buildings",
		Encoding:     "latin1",
		Type:         "MULTIPOLYGON",
		Geometry:     "geom",
		Overwrite:    true,
		Skipfailures: true,
	}

	s.Require().NoError(cmd.Run(s.env))
	s.assertCall(0, "ogr2ogr",
		"-f", "PostgreSQL",
		"-s_srs", "EPSG:27700", "-t_srs", "EPSG:4326", "-a_srs", "EPSG:4326",
		"PG:host=db1 user=geo dbname=gis options='-c client_encoding=latin1'",
		"file.mdb", "buildings",
		"-nlt", "MULTIPOLYGON",
		"-nln", "staging.buildings",
		"-lco", "GEOMETRY_NAME=geom",
		"-overwrite", "-append", "-skipfailures",
	)
}

func (s *Suite) TestTopgDefaultConnection() {
	cmd := &command.TopgCmd{File: "parcels.shp"}

	s.Require().NoError(cmd.Run(s.env))
	s.assertCall(0, "ogr2ogr", "-f", "PostgreSQL", "PG:host=db1 user=geo", "parcels.shp")
}

func (s *Suite) TestTopgUnknownProfile() {
	cmd := &command.TopgCmd{File: "parcels.shp", Connection: "staging"}

	err := cmd.Run(s.env)
	s.ErrorIs(err, pgconfig.ErrProfileNotFound)
	s.ErrorContains(err, "[localhost production]")
	s.Equal(command.UsageExitCode, command.ExitCode(err))
	s.Empty(s.runner.Calls)
}

func (s *Suite) TestTopgMissingConfig() {
	s.env.ConfigPath = s.dir + "/nowhere"
	cmd := &command.TopgCmd{File: "parcels.shp", Connection: "localhost"}

	err := cmd.Run(s.env)
	s.ErrorContains(err, "failed to read connection profiles")
	s.Empty(s.runner.Calls)
}

func (s *Suite) TestTopgInvalidSRID() {
	cmd := &command.TopgCmd{File: "parcels.shp", Connection: "localhost", Source: "osgb"}

	s.ErrorContains(cmd.Run(s.env), `source SRID: invalid EPSG code "osgb"`)
	s.Empty(s.runner.Calls)
}
