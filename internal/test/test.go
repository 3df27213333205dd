package test

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/planetlabs/ogrtool/internal/ogr"
	"github.com/stretchr/testify/require"
)

// Result is what a fake command writes and how it exits.
type Result struct {
	Stdout string
	Stderr string
	Code   int
}

// Runner records commands instead of spawning them.  Results are consumed in
// order; once exhausted every command succeeds silently.
type Runner struct {
	Calls   []ogr.Command
	Results []Result
}

var _ ogr.Runner = (*Runner)(nil)

func (r *Runner) Run(ctx context.Context, cmd ogr.Command, stdout io.Writer, stderr io.Writer) error {
	r.Calls = append(r.Calls, cmd)
	if len(r.Results) == 0 {
		return nil
	}
	result := r.Results[0]
	r.Results = r.Results[1:]

	if _, err := io.WriteString(stdout, result.Stdout); err != nil {
		return err
	}
	if _, err := io.WriteString(stderr, result.Stderr); err != nil {
		return err
	}
	if result.Code != 0 {
		return &ogr.ExitError{Name: cmd.Name, Code: result.Code}
	}
	return nil
}

// InfoOutput mimics `ogrinfo -so -al` for a single layer.
func InfoOutput(layer string, geometry string, count int) string {
	return Dedent(fmt.Sprintf(`
		INFO: Open of '%[1]s.shp'
		      using driver 'ESRI Shapefile' successful.

		Layer name: %[1]s
		Metadata:
		  DBF_DATE_LAST_UPDATE=2023-05-01
		Geometry: %[2]s
		Feature Count: %[3]d
		Extent: (498438.000000, 395921.000000) - (566498.000000, 471747.000000)
		Layer SRS WKT:
		PROJCRS["OSGB36 / British National Grid"]
		Data axis to CRS axis mapping: 1,2
		id: Integer64 (10.0)
	`, layer, geometry, count))
}

// WriteFile writes content to name inside a temporary directory and returns
// the full path.
func WriteFile(t *testing.T, name string, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func Dedent(block string) string {
	newline := "\n"
	whitespace := " \t"

	lines := strings.Split(block, newline)
	prefixLen := -1

	if len(lines) == 0 {
		return block
	}

	if len(strings.TrimLeft(lines[0], whitespace)) == 0 {
		lines = lines[1:]
	}
	if len(strings.TrimLeft(lines[len(lines)-1], whitespace)) == 0 {
		lines = lines[:len(lines)-1]
	}

	dedentedLines := []string{}
	for _, line := range lines {
		if prefixLen < 0 {
			trimmedLine := strings.TrimLeft(line, whitespace)
			prefixLen = len(line) - len(trimmedLine)
			dedentedLines = append(dedentedLines, trimmedLine)
			continue
		}
		if prefixLen > len(line)-1 {
			dedentedLines = append(dedentedLines, strings.TrimLeft(line, whitespace))
			continue
		}
		dedentedLines = append(dedentedLines, line[prefixLen:])
	}
	return strings.Join(dedentedLines, newline) + newline
}
