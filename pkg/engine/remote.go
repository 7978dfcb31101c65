package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/nikogura/rhymer/pkg/scoring"
)

// DefaultTimeout bounds one remote ranking call.
const DefaultTimeout = 30 * time.Second

// Remote is an engine served over HTTP. It posts the query as JSON to <endpoint>/find.
type Remote struct {
	endpoint   string
	httpClient *http.Client
}

// FindRequest is the wire form of a Query.
type FindRequest struct {
	Word     string         `json:"word"`
	POS      string         `json:"pos"`
	Stress   int            `json:"stress"`
	Settings scoring.Config `json:"settings"`
	// Theme is omitted when no theme is selected.
	Theme   []string `json:"theme,omitempty"`
	Exclude []string `json:"exclude"`
	Limit   int      `json:"limit"`
}

// FindResponse is the wire form of the ranked result.
type FindResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// NewRemote creates a remote engine client.
func NewRemote(endpoint string, timeout time.Duration) (remote *Remote) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	remote = &Remote{
		endpoint: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	return remote
}

// Find sends the query to the remote service.
func (r *Remote) Find(ctx context.Context, q Query) (candidates []Candidate, err error) {
	req := FindRequest{
		Word:     q.Word.Text,
		POS:      q.Word.POS,
		Stress:   q.Word.Stress,
		Settings: q.Settings,
		Exclude:  q.Exclude,
		Limit:    q.Limit,
	}
	if req.Exclude == nil {
		req.Exclude = []string{}
	}
	if q.Theme != nil {
		req.Theme = q.Theme.Words()
	}

	var resp FindResponse
	resp, err = r.sendRequest(ctx, req)
	if err != nil {
		err = errors.Wrap(err, "remote ranking failed")
		return candidates, err
	}

	candidates = resp.Candidates
	if q.Limit > 0 && len(candidates) > q.Limit {
		candidates = candidates[:q.Limit]
	}

	return candidates, err
}

func (r *Remote) sendRequest(ctx context.Context, findReq FindRequest) (findResp FindResponse, err error) {
	var reqBody []byte
	reqBody, err = json.Marshal(findReq)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal request")
		return findResp, err
	}

	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint+"/find", bytes.NewReader(reqBody))
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return findResp, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var resp *http.Response
	resp, err = r.httpClient.Do(httpReq)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return findResp, err
	}
	defer resp.Body.Close()

	var respBody []byte
	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return findResp, err
	}

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("engine request failed with status %d: %s", resp.StatusCode, string(respBody))
		return findResp, err
	}

	err = json.Unmarshal(respBody, &findResp)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse engine response: %s", string(respBody))
		return findResp, err
	}

	return findResp, err
}
