package command

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/planetlabs/ogrtool/internal/pgconfig"
	"golang.org/x/term"
)

type ProfilesCmd struct {
	Format   string `help:"Report format.  Possible values: ${enum}." enum:"text, json" default:"text"`
	Unpretty bool   `help:"No newlines or indentation in the JSON output."`
}

type ProfileInfo struct {
	Name       string          `json:"name"`
	Attributes []AttributeInfo `json:"attributes"`
}

type AttributeInfo struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

// Run lists profiles in file order.  Passwords are masked.
func (c *ProfilesCmd) Run(env *Env) error {
	config, err := env.profiles()
	if err != nil {
		return err
	}

	profiles := make([]*ProfileInfo, len(config.Profiles))
	for i, profile := range config.Profiles {
		info := &ProfileInfo{Name: profile.Name, Attributes: []AttributeInfo{}}
		for _, attribute := range profile.Attributes {
			attr := AttributeInfo{Key: attribute.Key}
			if attribute.Set {
				value := attribute.Value
				if strings.EqualFold(attribute.Key, "password") {
					value = pgconfig.MaskedValue
				}
				attr.Value = &value
			}
			info.Attributes = append(info.Attributes, attr)
		}
		profiles[i] = info
	}

	if c.Format == "json" {
		return c.formatJSON(env, profiles)
	}
	c.formatText(env, profiles)
	return nil
}

func (c *ProfilesCmd) formatJSON(env *Env, profiles []*ProfileInfo) error {
	encoder := json.NewEncoder(env.Stdout)
	if !c.Unpretty {
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
	}
	if err := encoder.Encode(profiles); err != nil {
		return NewCommandError("failed to encode profiles: %w", err)
	}
	return nil
}

func (c *ProfilesCmd) formatText(env *Env, profiles []*ProfileInfo) {
	tbl := table.NewWriter()
	if out, ok := env.Stdout.(*os.File); ok && term.IsTerminal(int(out.Fd())) {
		width, _, err := term.GetSize(int(out.Fd()))
		if err == nil {
			tbl.SetAllowedRowLength(width)
		}
	}

	tbl.AppendHeader(table.Row{"Profile", "Attributes"})
	for _, profile := range profiles {
		pairs := []string{}
		for _, attribute := range profile.Attributes {
			if attribute.Value == nil {
				pairs = append(pairs, attribute.Key+" "+text.Faint.Sprint("(unset)"))
				continue
			}
			pairs = append(pairs, attribute.Key+"="+*attribute.Value)
		}
		tbl.AppendRow(table.Row{profile.Name, strings.Join(pairs, "\n")})
	}
	tbl.AppendFooter(table.Row{"Profiles", len(profiles)})

	tbl.SetStyle(table.StyleRounded)
	tbl.SetOutputMirror(env.Stdout)
	tbl.Render()
}
