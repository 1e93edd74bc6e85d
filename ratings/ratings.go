/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package ratings imports player names and ratings from a federation rating
// list published as an HTML table. Fetches go through the shared cached HTTP
// client so repeated imports and the ratingseed tool do not hammer the
// federation site.
package ratings

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/chesstd/internal"
)

// Entry is one row of a federation rating list.
type Entry struct {
	ExternalID string
	Name       string
	Title      string
	Federation string
	Rating     int
	ProfileURL string
	Updated    time.Time
}

// Client fetches and parses rating-list pages.
type Client struct {
	hc *http.Client
}

// NewClient returns a Client backed by the cached HTTP client. Rating lists
// change at most daily, so responses are reused for 24 hours.
func NewClient(ctx context.Context) *Client {
	return &Client{hc: internal.NewCachedHTTPClient(ctx, 24*time.Hour)}
}

// FetchList downloads and parses the rating list at the given URL, sorted by
// rating descending.
func (c *Client) FetchList(ctx context.Context, url string) ([]Entry, error) {
	doc, err := c.fetchDoc(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch rating list: %w", err)
	}

	entries := parseList(doc)
	if len(entries) == 0 {
		return nil, fmt.Errorf("no rating entries found at %v", url)
	}

	return entries, nil
}

// Refresh overrides each entry's name and rating with the values from its
// profile page, falling back to the list values on any fetch or parse
// error. Profiles are fetched concurrently.
func (c *Client) Refresh(ctx context.Context, entries []Entry) ([]Entry, error) {
	var (
		mu      sync.Mutex
		updated []Entry
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for _, entry := range entries {
		entry := entry
		g.Go(func() error {
			if entry.ProfileURL != "" {
				doc, err := c.fetchDoc(ctx, entry.ProfileURL)
				if err == nil {
					applyProfile(doc, &entry)
				}
				// on error keep the list values
			}

			mu.Lock()
			updated = append(updated, entry)
			mu.Unlock()

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(updated, func(i, j int) bool {
		return updated[i].Rating > updated[j].Rating
	})

	return updated, nil
}

func (c *Client) fetchDoc(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode, url)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// parseList extracts entries from the rating list table. Expected columns:
// member id (with the profile link), name, title, federation, rating, and
// last-updated date.
func parseList(doc *goquery.Document) []Entry {
	var entries []Entry
	doc.Find("table#ratinglist tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 5 {
			return
		}

		entry := Entry{
			ExternalID: strings.TrimSpace(cells.Eq(0).Text()),
			Name:       internal.NormalizeName(cells.Eq(1).Text()),
			Title:      strings.TrimSpace(cells.Eq(2).Text()),
			Federation: strings.TrimSpace(cells.Eq(3).Text()),
			Rating:     parseRating(cells.Eq(4).Text()),
		}
		if href, ok := cells.Eq(0).Find("a").Attr("href"); ok {
			entry.ProfileURL = href
		}
		if cells.Length() > 5 {
			when, err := internal.ParseDateOrZero(
				strings.TrimSpace(cells.Eq(5).Text()))
			if err == nil {
				entry.Updated = when
			}
		}
		if entry.Name == "" {
			return
		}
		entries = append(entries, entry)
	})

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Rating > entries[j].Rating
	})

	return entries
}

// applyProfile overrides list values with the official ones from a profile
// page.
func applyProfile(doc *goquery.Document, entry *Entry) {
	if name := strings.TrimSpace(doc.Find("#profile .name").First().Text()); name != "" {
		entry.Name = internal.NormalizeName(name)
	}
	if rating := parseRating(doc.Find("#profile .rating").First().Text()); rating != 0 {
		entry.Rating = rating
	}
}

// parseRating tolerates provisional formats like "1559/24" and treats
// "unrated" or garbage as zero.
func parseRating(raw string) int {
	raw = strings.TrimSpace(raw)
	if idx := strings.Index(raw, "/"); idx != -1 {
		raw = raw[:idx]
	}
	rating, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}

	return rating
}
