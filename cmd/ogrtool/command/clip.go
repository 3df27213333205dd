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
	"github.com/planetlabs/ogrtool/internal/geo"
	"github.com/planetlabs/ogrtool/internal/ogr"
)

type ClipCmd struct {
	Bbox string `short:"b" required:"" help:"Bounding area in dataset units (e.g. \"498438 395921 566498 471747\")."`
	File string `short:"f" required:"" help:"File to clip an area from."`
}

func (c *ClipCmd) Run(env *Env) error {
	bounds, err := geo.ParseBbox(c.Bbox)
	if err != nil {
		return NewCommandError("invalid bbox %q: %w", c.Bbox, err)
	}
	clip, err := ogr.NewClip(c.File, bounds)
	if err != nil {
		return NewCommandError("%w", err)
	}
	return env.run(env.ogr2ogr(clip.Args()...), env.Stdout)
}
