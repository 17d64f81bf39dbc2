package internal

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/rm-hull/edge-blur/internal/pipeline"
	"github.com/rm-hull/edge-blur/internal/png"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockHTTPClient is a mock implementation of http.Client for testing
type MockHTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.DoFunc(req)
}

func encodedStep(t *testing.T) []byte {
	t.Helper()
	data, err := png.EncodeBytes(verticalStep(10, 10))
	require.NoError(t, err)
	return data
}

func TestSourceManager_OpenURL(t *testing.T) {
	t.Run("successful response", func(t *testing.T) {
		var requested string
		mockClient := &MockHTTPClient{
			DoFunc: func(req *http.Request) (*http.Response, error) {
				requested = req.URL.String()
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString("image bytes")),
					Header:     make(http.Header),
				}, nil
			},
		}

		mgr := &SourceManager{client: mockClient, logger: NewLogger(io.Discard, false)}
		reader, err := mgr.Open("https://example.test/img8.png")
		require.NoError(t, err)
		data, err := io.ReadAll(reader)
		assert.NoError(t, err)
		assert.Equal(t, "image bytes", string(data))
		assert.NoError(t, reader.Close())
		assert.Equal(t, "https://example.test/img8.png", requested)
	})

	t.Run("not found", func(t *testing.T) {
		mockClient := &MockHTTPClient{
			DoFunc: func(req *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusNotFound,
					Status:     "404 Not Found",
					Body:       io.NopCloser(bytes.NewBufferString("Not Found")),
					Header:     make(http.Header),
				}, nil
			},
		}

		mgr := &SourceManager{client: mockClient, logger: NewLogger(io.Discard, false)}
		reader, err := mgr.Open("http://example.test/missing.png")
		assert.ErrorIs(t, err, pipeline.ErrFileNotFound)
		assert.Nil(t, reader)
	})

	t.Run("API error response", func(t *testing.T) {
		mockClient := &MockHTTPClient{
			DoFunc: func(req *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusInternalServerError,
					Status:     "500 Internal Server Error",
					Body:       io.NopCloser(bytes.NewBufferString("Internal Server Error")),
					Header:     make(http.Header),
				}, nil
			},
		}

		mgr := &SourceManager{client: mockClient, logger: NewLogger(io.Discard, false)}
		reader, err := mgr.Open("http://example.test/img8.png")
		assert.Error(t, err)
		assert.Nil(t, reader)
		assert.Equal(t, "http status response from http://example.test/img8.png: 500 Internal Server Error", err.Error())
	})

	t.Run("transport error", func(t *testing.T) {
		mockClient := &MockHTTPClient{
			DoFunc: func(req *http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
		}

		mgr := &SourceManager{client: mockClient, logger: NewLogger(io.Discard, false)}
		_, err := mgr.Open("http://example.test/img8.png")
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestLoadImage(t *testing.T) {
	src := NewImageSource(NewLogger(io.Discard, false))
	dir := t.TempDir()

	t.Run("local file", func(t *testing.T) {
		path := filepath.Join(dir, "img8.png")
		require.NoError(t, os.WriteFile(path, encodedStep(t), 0644))

		img, err := LoadImage(src, path)
		require.NoError(t, err)
		assert.Equal(t, 10, img.Bounds().Dx())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadImage(src, filepath.Join(dir, "nope.png"))
		assert.ErrorIs(t, err, pipeline.ErrFileNotFound)
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(dir, "corrupt.png")
		require.NoError(t, os.WriteFile(path, []byte("garbage"), 0644))

		_, err := LoadImage(src, path)
		assert.ErrorIs(t, err, pipeline.ErrDecode)
	})

	t.Run("remote image", func(t *testing.T) {
		data := encodedStep(t)
		mgr := &SourceManager{
			client: &MockHTTPClient{
				DoFunc: func(req *http.Request) (*http.Response, error) {
					return &http.Response{
						StatusCode: http.StatusOK,
						Body:       io.NopCloser(bytes.NewReader(data)),
						Header:     make(http.Header),
					}, nil
				},
			},
			logger: NewLogger(io.Discard, false),
		}

		img, err := LoadImage(mgr, "https://example.test/img8.png")
		require.NoError(t, err)
		assert.Equal(t, 10, img.Bounds().Dy())
	})
}
