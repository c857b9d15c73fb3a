// Package loader resolves a CLI input argument into its raw bytes, the
// external collaborator spec.md §1 carves out of the core: the input is
// auto-resolved as a URL, an existing file path, or a literal string, in
// that order (grounded in the original Rust CLI's get_input_content).
package loader

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const userAgent = "toon-cli/1.0"

// DefaultTimeout bounds a URL fetch; the CLI is not expected to stream
// arbitrarily large or slow responses.
const DefaultTimeout = 30 * time.Second

// Resolve reads input's content: fetches it if input looks like a URL,
// reads it if input names an existing file, and otherwise treats input as
// a literal string. "-" reads from stdin.
func Resolve(input string) ([]byte, error) {
	switch {
	case input == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	case strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://"):
		return fetchURL(input)
	default:
		if info, err := os.Stat(input); err == nil && !info.IsDir() {
			data, err := os.ReadFile(input)
			if err != nil {
				return nil, fmt.Errorf("reading file %q: %w", input, err)
			}
			return data, nil
		}
		return []byte(input), nil
	}
}

func fetchURL(url string) ([]byte, error) {
	client := &http.Client{Timeout: DefaultTimeout}
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %q: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %q: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetching %q: unexpected status %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body from %q: %w", url, err)
	}
	return data, nil
}
