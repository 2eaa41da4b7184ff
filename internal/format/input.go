package format

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// maxImageSize bounds images fetched over HTTP.
const maxImageSize = 10 << 20

var httpClient = &http.Client{
	Timeout: 15 * time.Second,
}

// ReadInput reads payload input from: URL, file path, "-" for stdin, or raw string.
func ReadInput(input string) (string, error) {
	input = strings.TrimSpace(input)

	if input == "-" || input == "" {
		return readStdin()
	}

	// Try as URL
	if strings.HasPrefix(input, "https://") || strings.HasPrefix(input, "http://") {
		b, err := fetchURL(input, 0)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	// Try as file path
	if _, err := os.Stat(input); err == nil {
		return readFile(input)
	}

	// Treat as raw payload string
	return input, nil
}

// ReadInputRaw is like ReadInput but never reads stdin or fetches URLs; URLs
// are passed through unchanged.
func ReadInputRaw(input string) (string, error) {
	input = strings.TrimSpace(input)
	if strings.Contains(input, "://") {
		return input, nil
	}
	if _, err := os.Stat(input); err == nil {
		return readFile(input)
	}
	return input, nil
}

// ReadImage returns the bytes of an image referenced by a file path, an
// http(s) URL, or a data URL.
func ReadImage(ref string) ([]byte, error) {
	ref = strings.TrimSpace(ref)

	if IsDataURL(ref) {
		_, data, err := DecodeDataURL(ref)
		return data, err
	}

	if strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "http://") {
		return fetchURL(ref, maxImageSize)
	}

	b, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("reading image %s: %w", ref, err)
	}
	return b, nil
}

func readStdin() (string, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return "", fmt.Errorf("cannot read stdin: %w", err)
	}
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return "", fmt.Errorf("no input provided (use a file path, URL, raw payload, or pipe to stdin)")
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading file %s: %w", path, err)
	}
	return strings.TrimSpace(string(b)), nil
}

// fetchURL GETs url and returns the body. limit caps the body size; 0 means
// no cap.
func fetchURL(url string, limit int64) ([]byte, error) {
	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: HTTP %d", url, resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if limit > 0 {
		body = io.LimitReader(resp.Body, limit+1)
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}
	if limit > 0 && int64(len(b)) > limit {
		return nil, fmt.Errorf("fetching %s: response larger than %d bytes", url, limit)
	}

	return b, nil
}
