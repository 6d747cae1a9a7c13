package umdio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"catalog-audit/internal/domain"
	"catalog-audit/internal/httpx"
)

const listPath = "/courses/list"

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

// ListCourses fetches the whole course list of a semester in one request.
// The semester code is passed through as is.
func (c *Client) ListCourses(ctx context.Context, semester string) ([]domain.Record, error) {
	if strings.TrimSpace(semester) == "" {
		return nil, errors.New("umdio: missing semester")
	}

	u, err := url.Parse(strings.TrimRight(c.BaseURL, "/") + listPath)
	if err != nil {
		return nil, fmt.Errorf("umdio: invalid base url: %w", err)
	}
	q := u.Query()
	q.Set("semester", semester)
	u.RawQuery = q.Encode()

	c.logger().WithFields(logrus.Fields{
		"source":   "umdio",
		"semester": semester,
	}).Info("requesting course list")

	var out []domain.Record
	if err := httpx.GetJSON(ctx, c.HTTP, u.String(), &out); err != nil {
		return nil, fmt.Errorf("umdio: list courses semester=%s: %w", semester, err)
	}

	c.logger().WithFields(logrus.Fields{
		"source":  "umdio",
		"records": len(out),
	}).Info("fetched courses")
	return out, nil
}
