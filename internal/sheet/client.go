package sheet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nbdwit/club-api/internal/models"
	appErrors "github.com/nbdwit/club-api/pkg/errors"
)

// Recorder observes sheet round-trips. Implemented by the metrics service.
type Recorder interface {
	ObserveSheetOp(op, outcome string, duration time.Duration)
}

// Options configures the sheet client.
type Options struct {
	Endpoint      string
	Timeout       time.Duration
	ConfirmWrites bool
}

// Client talks to the spreadsheet web-app endpoint. Reads fetch the
// consolidated snapshot; writes are forwarded as form-encoded mutations
// whose response body is never interpreted.
type Client struct {
	endpoint   string
	httpClient *http.Client
	confirm    bool
	recorder   Recorder
	logger     *zap.Logger
}

// NewClient builds a sheet client. Recorder may be nil.
func NewClient(opts Options, recorder Recorder, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		endpoint:   opts.Endpoint,
		httpClient: &http.Client{Timeout: timeout},
		confirm:    opts.ConfirmWrites,
		recorder:   recorder,
		logger:     logger,
	}
}

// FetchSnapshot retrieves and decodes the consolidated sheet payload.
// Collection keys absent from the response stay nil in the result.
func (c *Client) FetchSnapshot(ctx context.Context) (*models.RawSnapshot, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build snapshot request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe("fetch_snapshot", "transport_error", start)
		return nil, appErrors.Wrap(err, appErrors.ErrSheetUnavailable.Code, appErrors.ErrSheetUnavailable.Status, "fetch snapshot")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe("fetch_snapshot", "bad_status", start)
		return nil, appErrors.Wrap(
			fmt.Errorf("unexpected status %d", resp.StatusCode),
			appErrors.ErrSheetUnavailable.Code, appErrors.ErrSheetUnavailable.Status, "fetch snapshot",
		)
	}

	var snapshot models.RawSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		c.observe("fetch_snapshot", "decode_error", start)
		return nil, appErrors.Wrap(err, appErrors.ErrSheetUnavailable.Code, appErrors.ErrSheetUnavailable.Status, "decode snapshot")
	}

	c.observe("fetch_snapshot", "ok", start)
	return &snapshot, nil
}

// Submit forwards one mutation as an application/x-www-form-urlencoded
// POST. The response body is always discarded; when ConfirmWrites is off
// any completed round-trip counts as success.
func (c *Client) Submit(ctx context.Context, m models.Mutation) error {
	start := time.Now()
	op := "submit_" + string(m.Mode)

	form := url.Values{}
	form.Set("mode", string(m.Mode))
	for key, value := range m.Fields {
		form.Set(key, value)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build mutation request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(op, "transport_error", start)
		return appErrors.Wrap(err, appErrors.ErrSheetUnavailable.Code, appErrors.ErrSheetUnavailable.Status, "forward mutation")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if c.confirm && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		c.observe(op, "bad_status", start)
		return appErrors.Wrap(
			fmt.Errorf("unexpected status %d", resp.StatusCode),
			appErrors.ErrSheetUnavailable.Code, appErrors.ErrSheetUnavailable.Status, "forward mutation",
		)
	}

	c.observe(op, "ok", start)
	c.logger.Debug("mutation forwarded", zap.String("mode", string(m.Mode)))
	return nil
}

func (c *Client) observe(op, outcome string, start time.Time) {
	if c.recorder != nil {
		c.recorder.ObserveSheetOp(op, outcome, time.Since(start))
	}
}
