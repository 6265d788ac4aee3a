// Package datacite registers DOIs for GCN Circulars with the DataCite REST API.
package datacite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/jrsteele09/gcn-portal/circulars"
	apperrors "github.com/jrsteele09/gcn-portal/internal/errors"
	"github.com/rs/zerolog"
)

const (
	contentType  = "application/vnd.api+json"
	publisher    = "NASA"
	seriesTitle  = "GCN Circulars"
	resourceType = "JournalArticle"
)

// Settings resolves registry configuration. Credentials are looked up on
// every registration so a missing value fails the call, not startup.
type Settings interface {
	GetOrigin() string
	GetDataCiteAPIURL() string
	GetDataCitePrefix() string
	GetDataCiteHandleURL() string
	GetDataCiteRepositoryID() (string, error)
	GetDataCitePassword() (string, error)
}

// RegistrationError is returned when the registry answers with a non-2xx status.
type RegistrationError struct {
	StatusCode int
	Body       string
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("DataCite API call failed with status %d and text %s", e.StatusCode, e.Body)
}

// Client is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	settings   Settings
}

var _ circulars.Registrar = (*Client)(nil)

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func New(settings Settings, opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		settings:   settings,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DOI returns the DOI string for a circular number.
func (c *Client) DOI(circularID int) string {
	return c.settings.GetDataCitePrefix() + "/" + strconv.Itoa(circularID)
}

// HandleURL returns the resolver URL for a circular's DOI.
func (c *Client) HandleURL(circularID int) string {
	return strings.TrimSuffix(c.settings.GetDataCiteHandleURL(), "/") + "/" + c.DOI(circularID)
}

// Register creates or replaces the DOI record for circular. The registry
// upsert is keyed by the DOI, so repeating a call overwrites the same record.
// Exactly one request is made; there is no retry.
func (c *Client) Register(ctx context.Context, circular circulars.Circular) error {
	if err := validate(circular); err != nil {
		return err
	}

	username, err := c.settings.GetDataCiteRepositoryID()
	if err != nil {
		return err
	}
	password, err := c.settings.GetDataCitePassword()
	if err != nil {
		return err
	}

	doi := c.DOI(circular.CircularID)
	body, err := json.Marshal(c.document(circular))
	if err != nil {
		return fmt.Errorf("failed to encode DOI record: %w", err)
	}

	endpoint := strings.TrimSuffix(c.settings.GetDataCiteAPIURL(), "/") + "/dois/" + doi
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.SetBasicAuth(username, password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read DataCite response with status %d: %w", resp.StatusCode, err)
		}
		return &RegistrationError{StatusCode: resp.StatusCode, Body: string(text)}
	}

	zerolog.Ctx(ctx).Info().Str("doi", doi).Int("status", resp.StatusCode).Msg("Registered DOI")
	return nil
}

func (c *Client) document(circular circulars.Circular) doiDocument {
	prefix := c.settings.GetDataCitePrefix()
	volume := strconv.Itoa(circular.CircularID)

	return doiDocument{
		Data: doiData{
			Type: "dois",
			Attributes: doiAttributes{
				DOI:             prefix + "/" + volume,
				Prefix:          prefix,
				Suffix:          volume,
				Event:           "publish",
				URL:             fmt.Sprintf("%s/circulars/%d", c.settings.GetOrigin(), circular.CircularID),
				Dates:           []date{{Date: circulars.FormatDateISO(circular.CreatedOn), DateType: "Created"}},
				Publisher:       publisher,
				PublicationYear: circular.CreatedOn.UTC().Year(),
				Creators:        []creator{{Name: circular.Submitter}},
				Titles:          []title{{Title: circular.Subject}},
				Types:           types{ResourceTypeGeneral: resourceType},
				Container:       container{Volume: volume, Title: seriesTitle},
			},
		},
	}
}

func validate(circular circulars.Circular) error {
	switch {
	case circular.CircularID <= 0:
		return fmt.Errorf("circularId must be positive: %w", apperrors.ErrInvalidInput)
	case circular.CreatedOn.IsZero():
		return fmt.Errorf("createdOn is required: %w", apperrors.ErrInvalidInput)
	case circular.Submitter == "":
		return fmt.Errorf("submitter is required: %w", apperrors.ErrInvalidInput)
	case circular.Subject == "":
		return fmt.Errorf("subject is required: %w", apperrors.ErrInvalidInput)
	}
	return nil
}
