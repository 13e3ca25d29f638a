// Package apify wraps the Apify v2 actor-run API: start a run, poll it to a
// terminal state, fetch the result dataset.
package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://api.apify.com/v2"

// Actor IDs of the hosted scrapers the pipelines drive.
const (
	ActorHashtagScraper = "apify~instagram-hashtag-scraper"
	ActorProfileScraper = "apify~instagram-profile-scraper"
	ActorInstagramPosts = "apify~instagram-post-scraper"
	ActorTikTokProfile  = "clockworks~tiktok-profile-scraper"
)

const pollInterval = 3 * time.Second

// Terminal run states.
const (
	StatusSucceeded = "SUCCEEDED"
	StatusFailed    = "FAILED"
	StatusAborted   = "ABORTED"
	StatusTimedOut  = "TIMED-OUT"
)

type Client struct {
	baseURL string
	token   string
	client  *http.Client
	limiter *rate.Limiter
}

func NewClient(token, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 60 * time.Second},
		limiter: rate.NewLimiter(rate.Every(pollInterval), 1),
	}
}

// Run describes an actor run as reported by the API.
type Run struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	DefaultDatasetID string `json:"defaultDatasetId"`
}

type runEnvelope struct {
	Data Run `json:"data"`
}

// StartHashtagScrape launches the hashtag scraper over the given hashtags.
func (c *Client) StartHashtagScrape(ctx context.Context, hashtags []string, resultsLimit int) (Run, error) {
	input := map[string]interface{}{
		"hashtags":     hashtags,
		"resultsLimit": resultsLimit,
		"searchType":   "hashtag",
		"resultsType":  "posts",
	}
	return c.startRun(ctx, ActorHashtagScraper, input)
}

// StartProfileScrape launches the profile scraper over the given usernames.
func (c *Client) StartProfileScrape(ctx context.Context, usernames []string) (Run, error) {
	input := map[string]interface{}{
		"usernames": usernames,
	}
	return c.startRun(ctx, ActorProfileScraper, input)
}

// StartInstagramPostScrape launches the post scraper for one creator.
func (c *Client) StartInstagramPostScrape(ctx context.Context, handle string, resultsLimit int) (Run, error) {
	input := map[string]interface{}{
		"username":     []string{handle},
		"resultsLimit": resultsLimit,
	}
	return c.startRun(ctx, ActorInstagramPosts, input)
}

// StartTikTokPostScrape launches the TikTok profile scraper for one creator.
func (c *Client) StartTikTokPostScrape(ctx context.Context, handle string, resultsPerPage int) (Run, error) {
	input := map[string]interface{}{
		"profiles":       []string{fmt.Sprintf("https://www.tiktok.com/@%s", handle)},
		"resultsPerPage": resultsPerPage,
	}
	return c.startRun(ctx, ActorTikTokProfile, input)
}

func (c *Client) startRun(ctx context.Context, actorID string, input interface{}) (Run, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return Run{}, err
	}

	url := fmt.Sprintf("%s/acts/%s/runs?token=%s", c.baseURL, actorID, c.token)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return Run{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Run{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		text, _ := io.ReadAll(resp.Body)
		return Run{}, fmt.Errorf("failed to start actor %s: %d %s", actorID, resp.StatusCode, text)
	}

	var envelope runEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return Run{}, err
	}
	return envelope.Data, nil
}

// RunStatus fetches the current state of a run.
func (c *Client) RunStatus(ctx context.Context, runID string) (Run, error) {
	url := fmt.Sprintf("%s/actor-runs/%s?token=%s", c.baseURL, runID, c.token)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return Run{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Run{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(resp.Body)
		return Run{}, fmt.Errorf("failed to get run status: %d %s", resp.StatusCode, text)
	}

	var envelope runEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return Run{}, err
	}
	return envelope.Data, nil
}

// WaitForRun polls a run every few seconds until it reaches a terminal
// state. Abandoning the poll via ctx does not cancel the remote run.
func (c *Client) WaitForRun(ctx context.Context, runID string, description string) (Run, error) {
	var bar *progressbar.ProgressBar
	if description != "" {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetDescription(description),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetWidth(15),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionSpinnerType(14),
		)
		defer bar.Finish()
	}

	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return Run{}, fmt.Errorf("rate limiter error: %v", err)
		}

		run, err := c.RunStatus(ctx, runID)
		if err != nil {
			return Run{}, err
		}
		if bar != nil {
			bar.Add(1)
		}

		switch run.Status {
		case StatusSucceeded:
			return run, nil
		case StatusFailed, StatusAborted, StatusTimedOut:
			return run, fmt.Errorf("apify run %s %s", runID, run.Status)
		}
	}
}

// DatasetItems fetches all items of a dataset as raw JSON objects; the
// caller picks the platform-specific normalizer.
func (c *Client) DatasetItems(ctx context.Context, datasetID string) ([]json.RawMessage, error) {
	url := fmt.Sprintf("%s/datasets/%s/items?token=%s&format=json&clean=true", c.baseURL, datasetID, c.token)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to get dataset items: %d %s", resp.StatusCode, text)
	}

	var items []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}
