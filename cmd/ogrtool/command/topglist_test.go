package command_test

import (
	"github.com/planetlabs/ogrtool/cmd/ogrtool/command"
	"github.com/planetlabs/ogrtool/internal/pgconfig"
	"github.com/planetlabs/ogrtool/internal/test"
)

func (s *Suite) newTopgList(list string) *command.TopgListCmd {
	return &command.TopgListCmd{
		List:       list,
		File:       "file.mdb",
		Connection: "localhost",
		Source:     "27700",
		Transform:  "4326",
		Dbname:     "gis",
		Geometry:   "geometry",
	}
}

func (s *Suite) TestTopgList() {
	list := s.writeFile("layers.csv", "buildings,MULTIPOLYGON\nroads,MULTILINESTRING")

	s.Require().NoError(s.newTopgList(list).Run(s.env))

	s.Equal("Importing buildings as type MULTIPOLYGON...\nImporting roads as type MULTILINESTRING...\n", s.stdout.String())
	s.Require().Len(s.runner.Calls, 2)
	s.assertCall(0, "ogr2ogr",
		"-f", "PostgreSQL",
		"-s_srs", "EPSG:27700", "-t_srs", "EPSG:4326",
		"PG:host=db1 user=geo dbname=gis",
		"file.mdb", "buildings",
		"-nlt", "MULTIPOLYGON",
		"-lco", "GEOMETRY_NAME=geometry",
	)
	s.assertCall(1, "ogr2ogr",
		"-f", "PostgreSQL",
		"-s_srs", "EPSG:27700", "-t_srs", "EPSG:4326",
		"PG:host=db1 user=geo dbname=gis",
		"file.mdb", "roads",
		"-nlt", "MULTILINESTRING",
		"-lco", "GEOMETRY_NAME=geometry",
	)
}

func (s *Suite) TestTopgListProgressBeforeEachImport() {
	list := s.writeFile("layers.csv", "buildings,MULTIPOLYGON\nroads,MULTILINESTRING\n")
	s.env.DryRun = true

	s.Require().NoError(s.newTopgList(list).Run(s.env))

	lines := s.stdout.String()
	s.Regexp(`(?s)^Importing buildings as type MULTIPOLYGON\.\.\.\nogr2ogr .*buildings.*\nImporting roads as type MULTILINESTRING\.\.\.\nogr2ogr .*roads.*\n$`, lines)
	s.Empty(s.runner.Calls)
}

func (s *Suite) TestTopgListSkipsMalformedLines() {
	list := s.writeFile("layers.csv", "buildings\n,POINT\nroads,MULTILINESTRING\n")

	err := s.newTopgList(list).Run(s.env)
	s.EqualError(err, "2 of 3 layers failed")
	s.Require().Len(s.runner.Calls, 1)
	s.Contains(s.runner.Calls[0].Args, "roads")
	s.Contains(s.stderr.String(), `entry 1: expected "layer,TYPE", got "buildings"`)
	s.Contains(s.stderr.String(), "entry 2:")
}

func (s *Suite) TestTopgListContinuesAfterFailure() {
	list := s.writeFile("layers.csv", "buildings,MULTIPOLYGON\nroads,MULTILINESTRING\n")
	s.runner.Results = []test.Result{{Code: 1}}

	err := s.newTopgList(list).Run(s.env)
	s.EqualError(err, "1 of 2 layers failed")
	s.Len(s.runner.Calls, 2)
	s.Equal(1, command.ExitCode(err))
}

func (s *Suite) TestTopgListUnknownProfile() {
	list := s.writeFile("layers.csv", "buildings,MULTIPOLYGON\n")
	cmd := s.newTopgList(list)
	cmd.Connection = "staging"

	s.ErrorIs(cmd.Run(s.env), pgconfig.ErrProfileNotFound)
	s.Empty(s.runner.Calls)
	s.Empty(s.stdout.String())
}

func (s *Suite) TestTopgListInvalidSRID() {
	list := s.writeFile("layers.csv", "buildings,MULTIPOLYGON\nroads,MULTILINESTRING\n")
	cmd := s.newTopgList(list)
	cmd.Source = "british"

	err := cmd.Run(s.env)
	s.ErrorContains(err, "source SRID")
	s.Equal(command.UsageExitCode, command.ExitCode(err))
	s.Empty(s.runner.Calls)
	s.Empty(s.stdout.String())
}
