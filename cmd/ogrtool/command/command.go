package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/planetlabs/ogrtool/internal/ogr"
	"github.com/planetlabs/ogrtool/internal/optional"
	"github.com/planetlabs/ogrtool/internal/pgconfig"
)

// UsageExitCode is returned for problems detected before any external command
// is started.
const UsageExitCode = 2

var CLI struct {
	Globals `embed:""`

	Info      InfoCmd      `cmd:"" help:"Show info summary about dataset."`
	Clip      ClipCmd      `cmd:"" help:"Clip an area from a shapefile.  Use 'x_min y_min x_max y_max' notation to define the bounding box."`
	Clip2shp  Clip2ShpCmd  `cmd:"" name:"clip2shp" help:"Take a list of PostGIS layers and clip them by bounding area to shapefiles."`
	Topg      TopgCmd      `cmd:"" help:"Import a GIS data file into PostGIS."`
	TopgList  TopgListCmd  `cmd:"" name:"topg-list" help:"Import layers listed in a CSV file of layer names and geometry types into PostGIS."`
	Shproject ShprojectCmd `cmd:"" help:"Reproject a shapefile using source and destination SRS EPSG codes."`
	Features  FeaturesCmd  `cmd:"" help:"Get the feature count from a file."`
	Shpgeom   ShpgeomCmd   `cmd:"" help:"Get the geometry type for a file."`
	Profiles  ProfilesCmd  `cmd:"" help:"List the connection profiles."`
	Version   VersionCmd   `cmd:"" help:"Print the version of this program."`
}

type Globals struct {
	Config  string `help:"Connection profiles file (defaults to .postgres in the home directory)." type:"path" env:"OGRTOOL_CONFIG"`
	Ogr2ogr string `name:"ogr2ogr" help:"The ogr2ogr executable." default:"ogr2ogr" env:"OGR2OGR"`
	Ogrinfo string `name:"ogrinfo" help:"The ogrinfo executable." default:"ogrinfo" env:"OGRINFO"`
	DryRun  bool   `help:"Print commands instead of running them.  Passwords are masked."`
	Verbose bool   `short:"v" help:"Print commands to stderr before running them.  Passwords are masked."`
	NoColor bool   `help:"No colors in status output."`
}

// Env carries what every command needs to start external processes.
type Env struct {
	Context    context.Context
	Runner     ogr.Runner
	Stdout     io.Writer
	Stderr     io.Writer
	ConfigPath string
	Ogr2ogr    string
	Ogrinfo    string
	DryRun     bool
	Verbose    bool
}

func NewEnv(ctx context.Context, globals *Globals, runner ogr.Runner, stdout io.Writer, stderr io.Writer) *Env {
	return &Env{
		Context:    ctx,
		Runner:     runner,
		Stdout:     stdout,
		Stderr:     stderr,
		ConfigPath: globals.Config,
		Ogr2ogr:    globals.Ogr2ogr,
		Ogrinfo:    globals.Ogrinfo,
		DryRun:     globals.DryRun,
		Verbose:    globals.Verbose,
	}
}

func (e *Env) context() context.Context {
	if e.Context == nil {
		return context.Background()
	}
	return e.Context
}

func (e *Env) ogr2ogr(args ...string) ogr.Command {
	return ogr.Command{Name: binary(e.Ogr2ogr, "ogr2ogr"), Args: args}
}

func (e *Env) ogrinfo(args ...string) ogr.Command {
	return ogr.Command{Name: binary(e.Ogrinfo, "ogrinfo"), Args: args}
}

func binary(configured string, fallback string) string {
	if configured == "" {
		return fallback
	}
	return configured
}

// run starts one external command, sending its stdout to the given writer
// and its stderr to the user.
func (e *Env) run(cmd ogr.Command, stdout io.Writer) error {
	if e.DryRun {
		_, err := fmt.Fprintln(e.Stdout, cmd.String())
		return err
	}
	if e.Verbose {
		color.New(color.Faint).Fprintln(e.Stderr, cmd.String())
	}
	return e.Runner.Run(e.context(), cmd, stdout, e.Stderr)
}

// capture runs cmd and returns its stdout.
func (e *Env) capture(cmd ogr.Command) (string, error) {
	output := &bytes.Buffer{}
	err := e.run(cmd, output)
	return output.String(), err
}

// connection resolves a named profile from the profiles file.  Problems here
// are usage errors so that nothing is started.
func (e *Env) connection(profile string, overrides pgconfig.Overrides) (string, error) {
	profile = optional.String(profile).Or(pgconfig.DefaultConnection)
	config, err := e.profiles()
	if err != nil {
		return "", err
	}
	conn, err := config.Resolve(profile, overrides)
	if err != nil {
		return "", NewCommandError("%w (defined profiles in %s: %v)", err, config.Path, config.Names())
	}
	return conn, nil
}

func (e *Env) profiles() (*pgconfig.Config, error) {
	path, ok := optional.String(e.ConfigPath).Get()
	if !ok {
		defaultPath, err := pgconfig.DefaultPath()
		if err != nil {
			return nil, NewCommandError("%w", err)
		}
		path = defaultPath
	}
	config, err := pgconfig.Load(path)
	if err != nil {
		return nil, NewCommandError("%w", err)
	}
	return config, nil
}

// failure reports a problem with one item of a list and lets the loop go on.
func (e *Env) failure(item string, err error) {
	color.New(color.FgRed).Fprintf(e.Stderr, " ✗ %s: %s\n", item, err)
}

type CommandError struct {
	err error
}

func NewCommandError(format string, a ...any) *CommandError {
	return &CommandError{err: fmt.Errorf(format, a...)}
}

func (e *CommandError) Error() string {
	return e.err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.err
}

func (e *CommandError) ExitCode() int {
	return UsageExitCode
}

// ListError is returned after every line of a list has been attempted and at
// least one of them failed.
type ListError struct {
	Failed int
	Total  int
	Noun   string
}

func (e *ListError) Error() string {
	noun := e.Noun
	if e.Total != 1 {
		noun += "s"
	}
	return fmt.Sprintf("%d of %d %s failed", e.Failed, e.Total, noun)
}

func (e *ListError) ExitCode() int {
	return 1
}

func listResult(failed int, total int, noun string) error {
	if failed == 0 {
		return nil
	}
	return &ListError{Failed: failed, Total: total, Noun: noun}
}

// ExitCode maps an error returned by parsing or by a command to the process
// exit status.  A failing external tool passes its own status through and
// every usage problem, including those kong reports, exits with
// UsageExitCode.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ogr.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var parseErr *kong.ParseError
	if errors.As(err, &parseErr) {
		return UsageExitCode
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}

// interrupted is true once the user has asked to stop, so list loops can end
// early instead of starting the next command.
func (e *Env) interrupted() bool {
	return e.context().Err() != nil
}
