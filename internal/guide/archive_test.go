package guide

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTransport answers every S3 call with 200 and records the requests.
type recordingTransport struct {
	mu   sync.Mutex
	reqs []*http.Request
}

func (rt *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		_, _ = io.Copy(io.Discard, req.Body)
		_ = req.Body.Close()
	}
	rt.mu.Lock()
	rt.reqs = append(rt.reqs, req)
	rt.mu.Unlock()
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Etag": {`"etag123"`}},
		Body:       io.NopCloser(bytes.NewReader(nil)),
		Request:    req,
	}, nil
}

func TestS3ArchivePutsUnderGuidesPrefix(t *testing.T) {
	rt := &recordingTransport{}
	archive, err := NewS3Archive(context.Background(), S3Config{
		Region:          "us-east-1",
		Bucket:          "care-guides",
		Endpoint:        "https://mock.s3.local",
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		PathStyle:       true,
		HTTPClient:      &http.Client{Transport: rt},
	})
	require.NoError(t, err)

	uri, err := archive.Put(context.Background(), "sc-12345-6789", []byte("<html></html>"))
	require.NoError(t, err)

	assert.Equal(t, "s3://care-guides/guides/sc-12345-6789.html", uri)
	require.Len(t, rt.reqs, 1)
	req := rt.reqs[0]
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/care-guides/guides/sc-12345-6789.html", req.URL.Path)
	assert.Equal(t, "text/html; charset=utf-8", req.Header.Get("Content-Type"))
}

func TestNewS3ArchiveRequiresBucket(t *testing.T) {
	_, err := NewS3Archive(context.Background(), S3Config{})
	assert.Error(t, err)
}
