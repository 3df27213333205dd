// Package pgconfig loads named PostgreSQL connection profiles and turns them
// into libpq connection strings for the OGR PostgreSQL driver.
//
// The profiles file is YAML, a mapping from profile name to connection
// attributes:
//
//	localhost:
//	  host: localhost
//	  user: postgres
//	  port: 5432
//
// dbname and client encoding are normally supplied per command rather than
// stored.
package pgconfig

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/planetlabs/ogrtool/internal/optional"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFileName   = ".postgres"
	DefaultConnection = "localhost"

	// MaskedValue stands in for passwords in anything printed for the user.
	MaskedValue = "********"
)

var (
	ErrProfileNotFound = errors.New("connection profile not found")
	ErrInvalidConfig   = errors.New("invalid connection profiles")
)

//go:embed schema.json
var schemaJSON string

var profileSchema = jsonschema.MustCompileString("ogrtool-profiles.schema.json", schemaJSON)

// DefaultPath is ~/.postgres.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("unable to determine home directory: %w", err)
	}
	return filepath.Join(home, DefaultFileName), nil
}

type Attribute struct {
	Key   string
	Value string
	// Set is false for attributes with a null value.  They are never written
	// to a connection string.
	Set bool
}

type Profile struct {
	Name       string
	Attributes []Attribute
}

// Overrides are applied on top of a profile when resolving it.
type Overrides struct {
	Host     optional.Value[string]
	User     optional.Value[string]
	Port     optional.Value[string]
	DBName   optional.Value[string]
	Encoding optional.Value[string]
}

// Config holds profiles in file order.
type Config struct {
	Path     string
	Profiles []*Profile
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read connection profiles: %w", err)
	}
	config, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	config.Path = path
	return config, nil
}

func Parse(data []byte) (*Config, error) {
	doc := &yaml.Node{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	config := &Config{}
	if len(doc.Content) == 0 {
		return config, nil
	}
	root := resolveAlias(doc.Content[0])

	if err := profileSchema.Validate(nodeValue(root)); err != nil {
		validationErr, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, simplifiedValidationMessage(validationErr))
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		body := resolveAlias(root.Content[i+1])
		profile := &Profile{Name: name}
		for j := 0; j+1 < len(body.Content); j += 2 {
			value := resolveAlias(body.Content[j+1])
			profile.Attributes = append(profile.Attributes, Attribute{
				Key:   body.Content[j].Value,
				Value: value.Value,
				Set:   value.ShortTag() != "!!null",
			})
		}
		config.Profiles = append(config.Profiles, profile)
	}
	return config, nil
}

func (c *Config) Profile(name string) (*Profile, error) {
	for _, profile := range c.Profiles {
		if profile.Name == name {
			return profile, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
}

func (c *Config) Names() []string {
	names := make([]string, len(c.Profiles))
	for i, profile := range c.Profiles {
		names[i] = profile.Name
	}
	return names
}

// Resolve looks up the named profile and serializes it with the overrides
// applied.
func (c *Config) Resolve(name string, overrides Overrides) (string, error) {
	profile, err := c.Profile(name)
	if err != nil {
		return "", err
	}
	return profile.ConnectionString(overrides), nil
}

// ConnectionString joins set attributes as space separated key=value pairs
// in profile order.  An override replaces an existing attribute in place or
// is appended after the profile's own attributes.
func (p *Profile) ConnectionString(overrides Overrides) string {
	attributes := slices.Clone(p.Attributes)
	apply := func(key string, override optional.Value[string]) {
		value, ok := override.Get()
		if !ok {
			return
		}
		for i := range attributes {
			if attributes[i].Key == key {
				attributes[i].Value = value
				attributes[i].Set = true
				return
			}
		}
		attributes = append(attributes, Attribute{Key: key, Value: value, Set: true})
	}

	apply("host", overrides.Host)
	apply("user", overrides.User)
	apply("port", overrides.Port)
	apply("dbname", overrides.DBName)
	if encoding, ok := overrides.Encoding.Get(); ok {
		apply("options", optional.Some(fmt.Sprintf("'-c client_encoding=%s'", encoding)))
	}

	pairs := []string{}
	for _, attribute := range attributes {
		if !attribute.Set {
			continue
		}
		pairs = append(pairs, attribute.Key+"="+attribute.Value)
	}
	return strings.Join(pairs, " ")
}

// MaskPassword replaces the value of a password=... pair in a connection
// string.  Quoted values may contain spaces and backslash escapes.
func MaskPassword(conn string) string {
	const key = "password="
	out := &strings.Builder{}
	rest := conn
	for {
		start := strings.Index(rest, key)
		if start < 0 {
			out.WriteString(rest)
			return out.String()
		}
		if start > 0 && rest[start-1] != ' ' {
			out.WriteString(rest[:start+len(key)])
			rest = rest[start+len(key):]
			continue
		}
		out.WriteString(rest[:start+len(key)])
		rest = rest[start+len(key):]
		rest = rest[passwordEnd(rest):]
		out.WriteString(MaskedValue)
	}
}

func passwordEnd(value string) int {
	if !strings.HasPrefix(value, "'") {
		if end := strings.IndexByte(value, ' '); end >= 0 {
			return end
		}
		return len(value)
	}
	for i := 1; i < len(value); i++ {
		switch value[i] {
		case '\\':
			i++
		case '\'':
			return i + 1
		}
	}
	return len(value)
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// nodeValue converts a YAML node to the generic values the schema validator
// works with.  Scalars stay strings so that ports and passwords keep their
// literal form.
func nodeValue(node *yaml.Node) any {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.MappingNode:
		m := map[string]any{}
		for i := 0; i+1 < len(node.Content); i += 2 {
			m[node.Content[i].Value] = nodeValue(node.Content[i+1])
		}
		return m
	case yaml.SequenceNode:
		values := make([]any, len(node.Content))
		for i, child := range node.Content {
			values[i] = nodeValue(child)
		}
		return values
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			return nil
		}
		return node.Value
	}
	return nil
}

func simplifiedValidationMessage(err *jsonschema.ValidationError) string {
	leaf := err
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	location := leaf.InstanceLocation
	if location == "" {
		location = "profiles"
	}
	return fmt.Sprintf("%s is invalid: %s", location, leaf.Message)
}
