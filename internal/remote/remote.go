// procalc — a scientific calculator for the terminal and the web
// Copyright (c) 2025 Khwahish Sharma (aka 0xRootAnon)
//
// Licensed under the GNU General Public License v3.0 or later (GPLv3+).
// You may obtain a copy of the License at
// https://www.gnu.org/licenses/gpl-3.0.html
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.

// Package remote records history on a procalc-server instead of a local db.
package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/akashbangaru2005/pro-math-calculator/internal/store"
)

const userAgent = "procalc/1.0"

type Client struct {
	base        string
	http        *http.Client
	maxAttempts int
	backoff     time.Duration
}

// New checks that baseURL is an absolute http(s) URL.
func New(baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("remote: base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("remote: base url %q: want http(s)://host", baseURL)
	}
	return &Client{
		base:        strings.TrimRight(baseURL, "/"),
		http:        &http.Client{Timeout: 8 * time.Second},
		maxAttempts: 4,
		backoff:     250 * time.Millisecond,
	}, nil
}

// getWithRetries retries transport failures and 5xx with jittered
// exponential backoff.
func (c *Client) getWithRetries(target string) ([]byte, int, error) {
	backoff := c.backoff
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		req, err := http.NewRequest(http.MethodGet, target, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("remote: GET %s: %w", target, err)
		}
		req.Header.Set("User-Agent", userAgent)
		resp, err := c.http.Do(req)
		if err == nil {
			body, rerr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if rerr == nil && resp.StatusCode < 500 {
				return body, resp.StatusCode, nil
			}
			if rerr != nil {
				lastErr = rerr
			} else {
				lastErr = fmt.Errorf("status %d", resp.StatusCode)
			}
		} else {
			lastErr = err
		}

		if attempt == c.maxAttempts {
			break
		}

		jitter := time.Duration(rand.Int63n(int64(backoff/2) + 1))
		time.Sleep(backoff + jitter)
		backoff *= 2
	}

	return nil, 0, fmt.Errorf("remote: GET %s: last error: %w", target, lastErr)
}

// SaveHistory posts one entry. It is not retried: a repeated POST after a
// lost response would record the entry twice.
func (c *Client) SaveHistory(expression, result string) error {
	body, err := json.Marshal(map[string]string{"expression": expression, "result": result})
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.base+"/api/saveHistory", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remote: save history: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("remote: save history: status %d", resp.StatusCode)
	}
	return nil
}

// ListHistory fetches the server's recency window and trims it to limit.
func (c *Client) ListHistory(limit int) ([]store.HistoryEntry, error) {
	body, status, err := c.getWithRetries(c.base + "/api/history")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("remote: list history: status %d", status)
	}
	var out []store.HistoryEntry
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("remote: list history: %w", err)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
