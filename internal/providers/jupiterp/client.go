package jupiterp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"catalog-audit/internal/domain"
	"catalog-audit/internal/httpx"
)

const (
	// DefaultPageSize is also the largest limit the API accepts.
	DefaultPageSize = 500
	MaxPageSize     = 500
	// MaxOffset is the largest offset the API can bind (uint16).
	MaxOffset = math.MaxUint16

	minifiedPath = "/courses/minified"
)

var (
	ErrPageRepeated = errors.New("page repeats the previous page")
	ErrOffsetLimit  = errors.New("offset past the api limit")
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     logrus.FieldLogger
}

func New(baseURL string, timeout time.Duration, log logrus.FieldLogger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout: timeout,
		},
		Log: log,
	}
}

func (c *Client) logger() logrus.FieldLogger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}

func (c *Client) pageURL(limit, offset int, prefix string) (string, error) {
	u, err := url.Parse(strings.TrimRight(c.BaseURL, "/") + minifiedPath)
	if err != nil {
		return "", fmt.Errorf("jupiterp: invalid base url: %w", err)
	}
	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	if prefix != "" {
		q.Set("prefix", prefix)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ListCoursesPage fetches one page of minified courses.
func (c *Client) ListCoursesPage(ctx context.Context, limit, offset int, prefix string) ([]domain.Record, error) {
	if limit <= 0 || limit > MaxPageSize {
		return nil, fmt.Errorf("jupiterp: page size %d out of range 1..%d", limit, MaxPageSize)
	}

	pageURL, err := c.pageURL(limit, offset, prefix)
	if err != nil {
		return nil, err
	}

	var page []domain.Record
	if err := httpx.GetJSON(ctx, c.HTTP, pageURL, &page); err != nil {
		return nil, fmt.Errorf("jupiterp: list courses offset=%d url=%s: %w", offset, pageURL, err)
	}
	return page, nil
}

// EachPage walks the catalog from offset 0 in steps of pageSize and calls fn
// with every non-empty page. It stops at the first empty page. Any error,
// from the API or from fn, ends the walk. A page whose first record equals the
// previous page's first record, or an offset beyond MaxOffset, is an error:
// the server is not honoring offset and the walk would never end.
func (c *Client) EachPage(
	ctx context.Context,
	pageSize int,
	prefix string,
	fn func(offset int, page []domain.Record) error,
) error {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var prevFirst domain.Record
	for offset := 0; ; offset += pageSize {
		if offset > MaxOffset {
			return fmt.Errorf("jupiterp: list courses offset=%d: %w (max %d)", offset, ErrOffsetLimit, MaxOffset)
		}
		c.logger().WithFields(logrus.Fields{
			"source": "jupiterp",
			"offset": offset,
		}).Info("requesting course page")

		page, err := c.ListCoursesPage(ctx, pageSize, offset, prefix)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			return nil
		}
		if offset > 0 && reflect.DeepEqual(page[0], prevFirst) {
			return fmt.Errorf("jupiterp: list courses offset=%d: %w at offset=%d", offset, ErrPageRepeated, offset-pageSize)
		}
		prevFirst = page[0]
		if err := fn(offset, page); err != nil {
			return err
		}
	}
}

// ListCourses returns every record in the catalog, in page order.
// Nothing is returned when any page fails.
func (c *Client) ListCourses(ctx context.Context, pageSize int, prefix string) ([]domain.Record, error) {
	var all []domain.Record
	err := c.EachPage(ctx, pageSize, prefix, func(_ int, page []domain.Record) error {
		all = append(all, page...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger().WithFields(logrus.Fields{
		"source":  "jupiterp",
		"records": len(all),
	}).Info("fetched courses")
	return all, nil
}
