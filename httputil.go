package pricefeed

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
)

// contains http utils to deal with remote services

// Doer executes HTTP requests. *http.Client is one.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// diskCache implements a simple disk cache for HTTP responses.
//
// Entries are keyed by the current period identifier, so they expire when the
// period changes.
type diskCache struct {
	base   http.RoundTripper
	period Period
	dir    string
	today  func() Date
}

// RoundTrip implements the http.RoundTripper interface. Only successful
// responses are stored.
func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	key := c.key(req)

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	err = c.put(key, resp)
	if err != nil {
		log.Printf("cache write err (ignored): %v\n", err)
	}
	return resp, nil
}

func (c *diskCache) key(req *http.Request) string {
	rangeID := c.period.Range(c.today()).Identifier()
	key := fmt.Sprintf("%s %s %s", rangeID, req.Method, req.URL.String())
	return fmt.Sprintf("%s-%x", c.period, sha1.Sum([]byte(key)))
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0o644)
}

// NewCachingClient returns an http.Client that caches successful responses in
// dir until period changes. An empty dir is the user cache directory.
func NewCachingClient(period Period, dir string) *http.Client {
	if dir == "" {
		dir = DefaultCacheDir()
	}
	return &http.Client{
		Transport: &diskCache{base: http.DefaultTransport, period: period, dir: dir, today: Today},
	}
}

// DefaultCacheDir returns the directory used to cache provider responses.
func DefaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "pricefeed")
}

// GetJSON performs an HTTP GET request to addr and unmarshals the JSON
// response body into data.
func GetJSON(ctx context.Context, client Doer, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
