package core

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"
)

func TestFSSample_Open(t *testing.T) {
	fsys := fstest.MapFS{
		"static/sample_data.csv": &fstest.MapFile{Data: []byte("a,b\n1,2\n")},
	}
	src := FSSample{FS: fsys, Path: "static/sample_data.csv"}

	rc, info, err := src.Open(context.Background())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	if info.FileName != "sample_data.csv" || !info.Sample || info.Size != 8 {
		t.Errorf("info = %+v", info)
	}
	body, _ := io.ReadAll(rc)
	if string(body) != "a,b\n1,2\n" {
		t.Errorf("body = %q", body)
	}
}

func TestFSSample_Missing(t *testing.T) {
	src := FSSample{FS: fstest.MapFS{}, Path: "nope.csv"}

	_, _, err := src.Open(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Open() error = %v, want *FetchError", err)
	}
	if got := MapError(err).Code; got != "SMP001" {
		t.Errorf("MapError code = %s, want SMP001", got)
	}
}

func TestHTTPSample_Open(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = io.WriteString(w, "x,y\nq,1\n")
	}))
	defer srv.Close()

	rc, info, err := NewHTTPSample(srv.URL, time.Second).Open(context.Background())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	if info.FileName != SampleFileName || !info.Sample {
		t.Errorf("info = %+v", info)
	}
	ds, err := ParseCSV(context.Background(), rc, info)
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	if ds.Len() != 1 {
		t.Errorf("Len() = %d, want 1", ds.Len())
	}
}

func TestHTTPSample_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, _, err := HTTPSample{URL: srv.URL}.Open(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Open() error = %v, want *FetchError", err)
	}
	if fe.Source != srv.URL {
		t.Errorf("Source = %q, want %q", fe.Source, srv.URL)
	}
}

func TestHTTPSample_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, _, err := NewHTTPSample(url, time.Second).Open(context.Background())
	if got := MapError(err).Code; got != "SMP001" {
		t.Errorf("MapError code = %s, want SMP001 (err: %v)", got, err)
	}
}
