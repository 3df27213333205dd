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
)

type InfoCmd struct {
	File string `short:"f" required:"" help:"File from which to show info."`
}

func (c *InfoCmd) Run(env *Env) error {
	if c.File == "" {
		return NewCommandError("a file is required")
	}
	return env.run(env.ogrinfo(ogr.InfoArgs(c.File, optional.None[string]())...), env.Stdout)
}
