package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nmalhotra/bookshelf-service/internal/config"
)

// Client handles integration with the Open Library catalog
type Client struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

// NewClient initializes a new Open Library client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.OpenLibraryURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// BookInfo is the normalized catalog record for an ISBN lookup.
// Missing upstream fields come back as "N/A" (or 0 for the page count).
type BookInfo struct {
	Title         string `json:"title"`
	Authors       string `json:"authors"`
	PublishDate   string `json:"publish_date"`
	Publishers    string `json:"publishers"`
	ISBN10        string `json:"isbn_10"`
	ISBN13        string `json:"isbn_13"`
	NumberOfPages int    `json:"number_of_pages"`
	FirstSentence string `json:"first_sentence"`
}

// editionResponse mirrors the subset of the Open Library edition
// document this service cares about.
type editionResponse struct {
	Title         string   `json:"title"`
	Contributions []string `json:"contributions"`
	PublishDate   string   `json:"publish_date"`
	Publishers    []string `json:"publishers"`
	ISBN10        []string `json:"isbn_10"`
	ISBN13        []string `json:"isbn_13"`
	NumberOfPages int      `json:"number_of_pages"`
	FirstSentence *struct {
		Value string `json:"value"`
	} `json:"first_sentence"`
}

// GetBookInfo looks up an ISBN against the catalog and normalizes the
// edition document into a flat record. No retry, no caching.
func (c *Client) GetBookInfo(ctx context.Context, isbn string) (*BookInfo, error) {
	url := fmt.Sprintf("%s/isbn/%s.json", c.baseURL, isbn)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var edition editionResponse
	if err := json.NewDecoder(resp.Body).Decode(&edition); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	info := &BookInfo{
		Title:         orNA(edition.Title),
		Authors:       strings.Join(edition.Contributions, ", "),
		PublishDate:   orNA(edition.PublishDate),
		Publishers:    strings.Join(edition.Publishers, ", "),
		ISBN10:        firstOrNA(edition.ISBN10),
		ISBN13:        firstOrNA(edition.ISBN13),
		NumberOfPages: edition.NumberOfPages,
	}
	if edition.FirstSentence != nil && edition.FirstSentence.Value != "" {
		info.FirstSentence = edition.FirstSentence.Value
	} else {
		info.FirstSentence = "N/A"
	}

	c.log.Debugf("Catalog lookup for ISBN %s: %s", isbn, info.Title)
	return info, nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func firstOrNA(values []string) string {
	if len(values) == 0 {
		return "N/A"
	}
	return values[0]
}
