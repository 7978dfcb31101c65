// Package source reads the text to highlight from a file, a URL or standard input.
package source

import (
	"context"
	"html"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Stdin is the input name that selects standard input.
const Stdin = "-"

// DefaultTimeout bounds a URL fetch.
const DefaultTimeout = 30 * time.Second

// Fetcher resolves inputs to text.
type Fetcher struct {
	stdin      io.Reader
	httpClient *http.Client
}

// NewFetcher creates a fetcher reading "-" from stdin.
func NewFetcher(stdin io.Reader) (f *Fetcher) {
	f = &Fetcher{
		stdin: stdin,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	return f
}

// Fetch returns the text named by input: "-" for stdin, an http(s) URL, or a file path.
func (f *Fetcher) Fetch(ctx context.Context, input string) (content string, err error) {
	if input == Stdin {
		content, err = f.fetchFromReader(f.stdin)
		if err != nil {
			err = errors.Wrap(err, "failed to read text from stdin")
		}
		return content, err
	}

	parsedURL, urlErr := url.Parse(input)
	if urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") {
		content, err = f.fetchFromURL(ctx, input)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch text from URL: %s", input)
		}
		return content, err
	}

	content, err = fetchFromFile(input)
	if err != nil {
		err = errors.Wrapf(err, "failed to fetch text from file: %s", input)
		return content, err
	}

	return content, err
}

// Lines splits text into lines, dropping the trailing empty line and carriage returns.
func Lines(content string) (lines []string) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return lines
	}
	lines = strings.Split(content, "\n")
	return lines
}

func (f *Fetcher) fetchFromReader(r io.Reader) (content string, err error) {
	if r == nil {
		err = errors.New("no standard input available")
		return content, err
	}

	var data []byte
	data, err = io.ReadAll(r)
	if err != nil {
		return content, err
	}

	content = string(data)
	if strings.TrimSpace(content) == "" {
		err = errors.New("input is empty")
		return content, err
	}

	return content, err
}

func fetchFromFile(path string) (content string, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read file: %s", path)
		return content, err
	}

	content = string(data)
	if content == "" {
		err = errors.New("file is empty")
		return content, err
	}

	return content, err
}

func (f *Fetcher) fetchFromURL(ctx context.Context, urlStr string) (content string, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return content, err
	}
	req.Header.Set("User-Agent", "rhymer/1.0")

	var resp *http.Response
	resp, err = f.httpClient.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return content, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return content, err
	}

	var body []byte
	body, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return content, err
	}

	content = string(body)
	if strings.Contains(resp.Header.Get("Content-Type"), "html") || strings.HasPrefix(strings.TrimSpace(content), "<") {
		content = htmlToText(content)
	}

	if strings.TrimSpace(content) == "" {
		err = errors.New("fetched content is empty after processing")
		return content, err
	}

	return content, err
}

// htmlToText drops script and style elements and all tags, turning line-breaking tags into
// newlines so verse keeps its line structure.
func htmlToText(page string) (text string) {
	page = dropElement(page, "script")
	page = dropElement(page, "style")

	var out strings.Builder
	var tag strings.Builder
	inTag := false
	for _, r := range page {
		switch {
		case r == '<':
			inTag = true
			tag.Reset()
		case r == '>' && inTag:
			inTag = false
			if breaksLine(tag.String()) {
				out.WriteByte('\n')
			}
		case inTag:
			tag.WriteRune(r)
		default:
			out.WriteRune(r)
		}
	}

	text = strings.TrimSpace(html.UnescapeString(out.String()))
	return text
}

func breaksLine(tag string) (ok bool) {
	fields := strings.Fields(tag)
	if len(fields) == 0 {
		return false
	}
	name := strings.ToLower(strings.Trim(fields[0], "/"))
	switch name {
	case "br", "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6", "tr":
		ok = true
	}
	return ok
}

func dropElement(page, name string) (result string) {
	result = page
	open := "<" + name
	closing := "</" + name + ">"

	for {
		start := strings.Index(result, open)
		if start == -1 {
			return result
		}

		end := strings.Index(result[start:], closing)
		if end == -1 {
			return result
		}

		end += start + len(closing)
		result = result[:start] + result[end:]
	}
}
