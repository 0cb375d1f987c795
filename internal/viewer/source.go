package viewer

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Source yields the raw text of the camera list.
type Source interface {
	// Name identifies the source in errors and logs.
	Name() string
	Fetch(ctx context.Context) (string, error)
}

// NewSource returns an HTTPSource for http and https locations and a
// FileSource for anything else. timeout applies to HTTP fetches; zero means
// no timeout.
func NewSource(location string, timeout time.Duration) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return &HTTPSource{
			URL:    location,
			Client: &http.Client{Timeout: timeout},
		}
	}
	return &FileSource{Path: location}
}

// HTTPSource fetches the camera list over HTTP.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// Name returns the source URL.
func (s *HTTPSource) Name() string {
	return s.URL
}

// Fetch issues a GET and returns the body. A non-2xx answer is a *FetchError;
// failing to get an answer or read it is a *NetworkError.
func (s *HTTPSource) Fetch(ctx context.Context) (string, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return "", &NetworkError{Source: s.URL, Err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", &NetworkError{Source: s.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{
			Source:     s.URL,
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Source: s.URL, Err: err}
	}
	return string(body), nil
}

// FileSource reads the camera list from disk.
type FileSource struct {
	Path string
}

// Name returns the file path.
func (s *FileSource) Name() string {
	return s.Path
}

// Fetch reads the whole file. Read failures are reported as *NetworkError.
func (s *FileSource) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &NetworkError{Source: s.Path, Err: err}
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", &NetworkError{Source: s.Path, Err: err}
	}
	return string(data), nil
}
