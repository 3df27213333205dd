package command_test

import (
	"github.com/planetlabs/ogrtool/cmd/ogrtool/command"
	"github.com/planetlabs/ogrtool/internal/test"
)

func (s *Suite) TestShpgeomFile() {
	s.runner.Results = []test.Result{{Stdout: test.InfoOutput("parcels", "Polygon", 42)}}
	cmd := &command.ShpgeomCmd{File: "parcels.shp"}

	s.Require().NoError(cmd.Run(s.env))
	s.assertCall(0, "ogrinfo", "-so", "-al", "parcels.shp")
	s.Equal("Polygon\n", s.stdout.String())
}

func (s *Suite) TestShpgeomList() {
	list := s.writeFile("files.txt", "a.shp\n  b.shp\n")
	s.runner.Results = []test.Result{
		{Stdout: test.InfoOutput("a", "Polygon", 1)},
		{Stdout: test.InfoOutput("b", "Point", 2)},
	}
	cmd := &command.ShpgeomCmd{List: list}

	s.Require().NoError(cmd.Run(s.env))
	s.assertCall(0, "ogrinfo", "-so", "-al", "a.shp")
	s.assertCall(1, "ogrinfo", "-so", "-al", "b.shp")
	s.Equal("a.shp: Polygon\nb.shp: Point\n", s.stdout.String())
}

func (s *Suite) TestShpgeomListContinuesAfterFailure() {
	list := s.writeFile("files.txt", "missing.shp\nb.shp\n")
	s.runner.Results = []test.Result{
		{Stderr: "FAILURE: Unable to open datasource\n", Code: 1},
		{Stdout: test.InfoOutput("b", "Point", 2)},
	}
	cmd := &command.ShpgeomCmd{List: list}

	s.EqualError(cmd.Run(s.env), "1 of 2 files failed")
	s.Equal("b.shp: Point\n", s.stdout.String())
}

func (s *Suite) TestShpgeomNeither() {
	cmd := &command.ShpgeomCmd{}

	err := cmd.Run(s.env)
	s.ErrorContains(err, "one of --file or --list is required")
	s.Equal(command.UsageExitCode, command.ExitCode(err))
	s.Empty(s.runner.Calls)
}

func (s *Suite) TestShpgeomBoth() {
	cmd := &command.ShpgeomCmd{File: "a.shp", List: "files.txt"}

	s.ErrorContains(cmd.Run(s.env), "only one of --file or --list")
	s.Empty(s.runner.Calls)
}
