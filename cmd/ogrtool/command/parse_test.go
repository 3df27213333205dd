package command_test

import (
	"context"
	"os"

	"github.com/alecthomas/kong"
	"github.com/planetlabs/ogrtool/cmd/ogrtool/command"
)

func (s *Suite) parse(args ...string) (*kong.Context, error) {
	parser, err := kong.New(&command.CLI, kong.Name("ogrtool"), kong.Exit(func(int) {}))
	s.Require().NoError(err)
	return parser.Parse(args)
}

func (s *Suite) TestParseTopg() {
	ctx, err := s.parse("--config", s.dir+"/profiles.yml", "topg", "-f", "file.mdb", "-l", "buildings", "-T", "MULTIPOLYGON", "-O", "-S", "-s", "27700")
	s.Require().NoError(err)

	s.Equal("topg", ctx.Command())
	s.Equal(s.dir+"/profiles.yml", command.CLI.Config)
	s.Equal("file.mdb", command.CLI.Topg.File)
	s.Equal("buildings", command.CLI.Topg.Layer)
	s.Equal("MULTIPOLYGON", command.CLI.Topg.Type)
	s.Equal("27700", command.CLI.Topg.Source)
	s.Equal("localhost", command.CLI.Topg.Connection)
	s.Equal("UTF-8", command.CLI.Topg.Encoding)
	s.True(command.CLI.Topg.Overwrite)
	s.True(command.CLI.Topg.Skipfailures)
	s.False(command.CLI.Topg.Append)
}

func (s *Suite) TestParseMissingRequired() {
	_, err := s.parse("clip", "-f", "data/parcels.shp")
	s.ErrorContains(err, "--bbox")
}

func (s *Suite) TestParseShpgeomExclusive() {
	_, err := s.parse("shpgeom", "-f", "a.shp", "-l", "files.txt")
	s.Error(err)
}

func (s *Suite) TestParseTopgList() {
	ctx, err := s.parse("topg-list", "layers.csv", "-f", "file.mdb", "-d", "gis")
	s.Require().NoError(err)

	s.Equal("topg-list <list>", ctx.Command())
	s.Equal("layers.csv", command.CLI.TopgList.List)
	s.Equal("geometry", command.CLI.TopgList.Geometry)
}

func (s *Suite) TestParseRunsCommand() {
	ctx, err := s.parse("--config", s.env.ConfigPath, "shproject", "-f", "data/roads.shp", "-s", "4326", "-t", "3857")
	s.Require().NoError(err)

	s.Require().NoError(ctx.Run(s.env))
	s.assertCall(0, "ogr2ogr",
		"-f", "ESRI Shapefile",
		"-s_srs", "EPSG:4326", "-t_srs", "EPSG:3857",
		"data/roads_project.shp", "data/roads.shp",
	)
}

func (s *Suite) TestParseBinaries() {
	_, err := s.parse("--ogr2ogr", "/opt/gdal/bin/ogr2ogr", "--ogrinfo", "/opt/gdal/bin/ogrinfo", "version")
	s.Require().NoError(err)

	s.Equal("/opt/gdal/bin/ogr2ogr", command.CLI.Ogr2ogr)
	s.Equal("/opt/gdal/bin/ogrinfo", command.CLI.Ogrinfo)
}

func (s *Suite) TestParseConfigDefaultsToHome() {
	s.T().Setenv("OGRTOOL_CONFIG", "")
	s.Require().NoError(os.Unsetenv("OGRTOOL_CONFIG"))
	s.T().Setenv("HOME", s.dir)

	ctx, err := s.parse("topg", "-f", "roads.shp")
	s.Require().NoError(err)
	s.Empty(command.CLI.Config)

	env := command.NewEnv(context.Background(), &command.CLI.Globals, s.runner, s.stdout, s.stderr)
	s.Require().NoError(ctx.Run(env))
	s.assertCall(0, "ogr2ogr",
		"-f", "PostgreSQL",
		"PG:host=db1 user=geo options='-c client_encoding=UTF-8'",
		"roads.shp",
	)
}

func (s *Suite) TestParseErrorsAreUsageErrors() {
	_, err := s.parse("clip", "-f", "data/parcels.shp")
	s.Require().Error(err)
	s.Equal(command.UsageExitCode, command.ExitCode(err))

	_, err = s.parse("--ogr-2-ogr", "x", "version")
	s.Require().Error(err)
	s.Equal(command.UsageExitCode, command.ExitCode(err))

	_, err = s.parse("shpgeom", "-f", "a.shp", "-l", "files.txt")
	s.Require().Error(err)
	s.Equal(command.UsageExitCode, command.ExitCode(err))
}

func (s *Suite) TestUsageErrorsShareExitCode() {
	_, err := s.parse("clip", "-f", "data/parcels.shp")
	s.Require().Error(err)

	shpgeom := &command.ShpgeomCmd{}
	s.Equal(command.ExitCode(err), command.ExitCode(shpgeom.Run(s.env)))

	topg := &command.TopgCmd{File: "roads.shp", Connection: "staging"}
	s.Equal(command.ExitCode(err), command.ExitCode(topg.Run(s.env)))
}
