package core

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"time"
)

// SampleFileName is the display name given to the bundled dataset.
const SampleFileName = "sample_data.csv"

// FetchError reports that the sample dataset could not be retrieved.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("sample fetch failed: %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// SampleSource provides the bundled sample CSV.
type SampleSource interface {
	Open(ctx context.Context) (io.ReadCloser, SourceInfo, error)
}

// FSSample serves the sample from a file system, usually the embedded
// static assets of the web server.
type FSSample struct {
	FS   fs.FS
	Path string
}

// Open implements SampleSource.
func (s FSSample) Open(ctx context.Context) (io.ReadCloser, SourceInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, SourceInfo{}, &FetchError{Source: s.Path, Err: err}
	}
	f, err := s.FS.Open(s.Path)
	if err != nil {
		return nil, SourceInfo{}, &FetchError{Source: s.Path, Err: err}
	}
	info := SourceInfo{FileName: path.Base(s.Path), Sample: true}
	if st, err := f.Stat(); err == nil {
		info.Size = st.Size()
	}
	return f, info, nil
}

// HTTPSample fetches the sample from a URL.
type HTTPSample struct {
	URL    string
	Client *http.Client
}

// NewHTTPSample returns an HTTPSample with a bounded client timeout.
func NewHTTPSample(url string, timeout time.Duration) HTTPSample {
	return HTTPSample{URL: url, Client: &http.Client{Timeout: timeout}}
}

// Open implements SampleSource.
func (s HTTPSample) Open(ctx context.Context) (io.ReadCloser, SourceInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, SourceInfo{}, &FetchError{Source: s.URL, Err: err}
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, SourceInfo{}, &FetchError{Source: s.URL, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, SourceInfo{}, &FetchError{Source: s.URL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	info := SourceInfo{FileName: SampleFileName, Sample: true}
	if resp.ContentLength > 0 {
		info.Size = resp.ContentLength
	}
	return resp.Body, info, nil
}
