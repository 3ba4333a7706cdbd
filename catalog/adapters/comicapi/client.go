package comicapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"comicapp/catalog/core"
)

// MaxBodySize bounds how much of a reply is read.
const MaxBodySize = 8 << 20

type Client struct {
	log     *slog.Logger
	url     string
	timeout time.Duration
	http    *http.Client
	maxBody int64
}

// NewClient targets <baseURL>/<resourcePath>. A zero timeout leaves the
// transport default in place.
func NewClient(baseURL, resourcePath string, timeout time.Duration, log *slog.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("empty base url")
	}
	if log == nil {
		return nil, core.ErrNilDependency
	}
	return &Client{
		log:     log,
		url:     joinURL(baseURL, resourcePath),
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
		maxBody: MaxBodySize,
	}, nil
}

func (c *Client) URL() string {
	return c.url
}

type comicResp struct {
	ID          *string   `json:"id"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	PageCount   *int      `json:"pageCount"`
	Creators    []*string `json:"creators"`
}

// FetchAll downloads the whole comics list. It never retries.
func (c *Client) FetchAll(ctx context.Context) ([]core.ComicRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrNetwork, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Warn("close response body failed", "error", cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status: %s", core.ErrProtocol, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", core.ErrNetwork, err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", core.ErrDecode, c.maxBody)
	}

	recs, err := decode(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrDecode, err)
	}
	c.log.Debug("comics downloaded", "url", c.url, "count", len(recs))
	return recs, nil
}

func decode(body []byte) ([]core.ComicRecord, error) {
	var items []*comicResp
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, errors.New("expected a JSON array")
	}

	out := make([]core.ComicRecord, 0, len(items))
	for i, it := range items {
		if it == nil {
			return nil, fmt.Errorf("item %d: null record", i)
		}
		if it.ID == nil {
			return nil, fmt.Errorf("item %d: missing id", i)
		}
		if it.Title == nil {
			return nil, fmt.Errorf("item %d: missing title", i)
		}
		var creators []string
		if it.Creators != nil {
			creators = make([]string, 0, len(it.Creators))
			for j, c := range it.Creators {
				if c == nil {
					return nil, fmt.Errorf("item %d: null creator %d", i, j)
				}
				creators = append(creators, *c)
			}
		}
		out = append(out, core.ComicRecord{
			ID:          *it.ID,
			Title:       *it.Title,
			Description: it.Description,
			ImageURL:    it.ImageURL,
			PageCount:   it.PageCount,
			Creators:    creators,
		})
	}
	return out, nil
}

func joinURL(base, path string) string {
	base = strings.TrimRight(base, "/")
	path = strings.TrimLeft(path, "/")
	if path == "" {
		return base
	}
	return base + "/" + path
}
