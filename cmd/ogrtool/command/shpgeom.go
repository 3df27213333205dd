package command

import (
	"fmt"

	"github.com/planetlabs/ogrtool/internal/ogr"
	"github.com/planetlabs/ogrtool/internal/optional"
	"github.com/planetlabs/ogrtool/internal/storage"
)

type ShpgeomCmd struct {
	File string `short:"f" xor:"input" help:"File to get geometry from."`
	List string `short:"l" xor:"input" help:"Path or URL of a list of shapefiles to parse (one path per line)."`
}

func (c *ShpgeomCmd) Run(env *Env) error {
	file, list := optional.String(c.File), optional.String(c.List)
	if file.IsSet() && list.IsSet() {
		return NewCommandError("only one of --file or --list may be provided")
	}
	if !file.IsSet() && !list.IsSet() {
		return NewCommandError("one of --file or --list is required")
	}

	if file.IsSet() {
		geometries, err := c.geometries(env, c.File)
		if err != nil {
			return err
		}
		for _, geometry := range geometries {
			fmt.Fprintln(env.Stdout, geometry)
		}
		return nil
	}

	paths, err := storage.ReadLines(env.context(), c.List)
	if err != nil {
		return NewCommandError("trouble reading file list %q: %w", c.List, err)
	}

	failed := 0
	for _, path := range paths {
		if env.interrupted() {
			return env.context().Err()
		}
		geometries, err := c.geometries(env, path)
		if err != nil {
			failed++
			env.failure(path, err)
			continue
		}
		for _, geometry := range geometries {
			fmt.Fprintf(env.Stdout, "%s: %s\n", path, geometry)
		}
	}
	return listResult(failed, len(paths), "file")
}

func (c *ShpgeomCmd) geometries(env *Env, path string) ([]string, error) {
	output, err := env.capture(env.ogrinfo(ogr.InfoArgs(path, optional.None[string]())...))
	if err != nil {
		return nil, err
	}
	return ogr.FieldValues(output, ogr.LabelGeometry), nil
}
