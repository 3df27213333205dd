package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

type HttpReader struct {
	url    string
	client *http.Client
	body   io.ReadCloser
}

func NewHttpReader(ctx context.Context, url string) (*HttpReader, error) {
	reader := &HttpReader{
		url:    url,
		client: &http.Client{},
	}
	if err := reader.init(ctx); err != nil {
		return nil, err
	}
	return reader, nil
}

func (r *HttpReader) init(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	if !success(resp) {
		resp.Body.Close()
		return fmt.Errorf("unexpected response from %s: %d", r.url, resp.StatusCode)
	}

	r.body = resp.Body
	return nil
}

func success(response *http.Response) bool {
	return response.StatusCode >= http.StatusOK && response.StatusCode < http.StatusMultipleChoices
}

func (r *HttpReader) Read(data []byte) (int, error) {
	return r.body.Read(data)
}

func (r *HttpReader) Close() error {
	err := r.body.Close()
	r.client.CloseIdleConnections()
	return err
}
