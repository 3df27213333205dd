// Package storage opens list files from local paths, HTTP(S) URLs, or blob
// storage URLs (file://, s3://, gs://, azblob://).
package storage

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

func isHttp(name string) bool {
	return strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://")
}

func isBlob(name string) bool {
	return strings.Contains(name, "://")
}

// NewReader picks a reader based on the scheme of name.  Names without a
// scheme are opened as local files.
func NewReader(ctx context.Context, name string) (io.ReadCloser, error) {
	var reader io.ReadCloser
	var err error
	switch {
	case isHttp(name):
		reader, err = NewHttpReader(ctx, name)
	case isBlob(name):
		reader, err = NewBlobReader(ctx, name)
	default:
		reader, err = os.Open(name)
	}
	if err != nil {
		return nil, err
	}
	return reader, nil
}

// ReadLines returns the whitespace-trimmed, non-blank lines of name.
func ReadLines(ctx context.Context, name string) ([]string, error) {
	reader, err := NewReader(ctx, name)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	lines := []string{}
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("trouble reading %s: %w", name, err)
	}
	return lines, nil
}
