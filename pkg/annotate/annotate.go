// Package annotate talks to the external annotation service (a CoreNLP-style
// HTTP server) that tokenizes, POS-tags and dependency-parses raw text.
package annotate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tortuga/pkg/deptree"
)

// DefaultBaseURL is the usual local annotation server address.
const DefaultBaseURL = "http://localhost:9000/"

const annotators = `{"annotators": "pos,depparse", "outputFormat": "json"}`

// Client posts text to the annotation server and decodes its response to
// the flat token and edge lists the tree builder consumes.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

func NewClient(baseURL string, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// response mirrors the server's JSON output, reduced to the fields we read.
type response struct {
	Sentences []struct {
		Tokens []struct {
			Word  string `json:"word"`
			Index int    `json:"index"`
			POS   string `json:"pos"`
		} `json:"tokens"`
		Dependencies []struct {
			Governor  int    `json:"governor"`
			Dependent int    `json:"dependent"`
			Dep       string `json:"dep"`
		} `json:"basic-dependencies"`
	} `json:"sentences"`
}

// Annotate parses text into one Sentence per sentence of the input.
func (c *Client) Annotate(ctx context.Context, text string) ([]deptree.Sentence, error) {
	u := c.baseURL + "?" + url.Values{"properties": {annotators}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(text))
	if err != nil {
		return nil, err
	}

	c.log.Debug("annotation request", "url", c.baseURL, "bytes", len(text))
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("annotation server: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("annotation server returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decoding annotation response: %w", err)
	}

	sentences := make([]deptree.Sentence, 0, len(r.Sentences))
	for _, s := range r.Sentences {
		var sent deptree.Sentence
		for _, t := range s.Tokens {
			sent.Tokens = append(sent.Tokens, deptree.Token{Text: t.Word, Index: t.Index, POS: t.POS})
		}
		for _, e := range s.Dependencies {
			sent.Edges = append(sent.Edges, deptree.Edge{Governor: e.Governor, Dependent: e.Dependent, Label: e.Dep})
		}
		sentences = append(sentences, sent)
	}
	return sentences, nil
}
