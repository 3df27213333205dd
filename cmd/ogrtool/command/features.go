package command

import (
	"fmt"

	"github.com/planetlabs/ogrtool/internal/ogr"
	"github.com/planetlabs/ogrtool/internal/optional"
)

type FeaturesCmd struct {
	File  string `short:"f" required:"" help:"File to count features from."`
	Layer string `short:"l" help:"Layer name."`
}

func (c *FeaturesCmd) Run(env *Env) error {
	if c.File == "" {
		return NewCommandError("a file is required")
	}
	output, err := env.capture(env.ogrinfo(ogr.InfoArgs(c.File, optional.String(c.Layer))...))
	if err != nil {
		return err
	}
	for _, count := range ogr.FieldValues(output, ogr.LabelFeatureCount) {
		fmt.Fprintln(env.Stdout, count)
	}
	return nil
}
