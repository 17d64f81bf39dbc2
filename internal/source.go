package internal

import (
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rm-hull/edge-blur/internal/pipeline"
	"github.com/rm-hull/edge-blur/internal/png"
	"github.com/sirupsen/logrus"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ImageSource opens an image by location, either a local path or an http(s) URL.
type ImageSource interface {
	Open(location string) (io.ReadCloser, error)
}

type SourceManager struct {
	client HTTPClient
	logger *logrus.Logger
}

func NewImageSource(logger *logrus.Logger) ImageSource {
	return &SourceManager{
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

func (mgr *SourceManager) Open(location string) (io.ReadCloser, error) {
	if isURL(location) {
		return mgr.get(location)
	}

	f, err := os.Open(location)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", location, pipeline.ErrFileNotFound)
		}
		return nil, err
	}
	return f, nil
}

func (mgr *SourceManager) get(url string) (io.ReadCloser, error) {
	mgr.logger.WithField("url", url).Info("Retrieving image")
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	res, err := mgr.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from %s: %w", url, err)
	}

	if res.StatusCode == http.StatusNotFound {
		_ = res.Body.Close()
		return nil, fmt.Errorf("%s: %w", url, pipeline.ErrFileNotFound)
	}

	if res.StatusCode > 299 {
		_ = res.Body.Close()
		return nil, fmt.Errorf("http status response from %s: %s", url, res.Status)
	}

	return res.Body, nil
}

// LoadImage opens and decodes the image at location.
func LoadImage(src ImageSource, location string) (image.Image, error) {
	r, err := src.Open(location)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = r.Close()
	}()

	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	return img, nil
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
