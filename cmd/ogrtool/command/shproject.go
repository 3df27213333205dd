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
)

type ShprojectCmd struct {
	Inputfile string `short:"f" required:"" help:"File to reproject."`
	Source    string `short:"s" help:"Source data SRS."`
	Transform string `short:"t" help:"Destination data SRS."`
	Assign    string `short:"a" help:"Assign data SRS."`
}

func (c *ShprojectCmd) Run(env *Env) error {
	srs, err := ogr.NewSRS(c.Source, c.Transform, c.Assign)
	if err != nil {
		return NewCommandError("%w", err)
	}
	reproject, err := ogr.NewReproject(c.Inputfile, srs)
	if err != nil {
		return NewCommandError("%w", err)
	}
	return env.run(env.ogr2ogr(reproject.Args()...), env.Stdout)
}
