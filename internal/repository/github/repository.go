// Package github implements the remote table store against the GitHub
// contents API. The table lives as a single CSV file in a repository;
// the file's blob SHA is the revision identifier for the
// fetch-revision-before-write sequence.
package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"

	"daily-log/internal/config"
	"daily-log/internal/domain"
	"daily-log/internal/errors"
	"daily-log/internal/logging"
)

// Repository defines the interface for remote table store operations.
// Implementations hold no state between calls; every operation is a fresh
// request against the store.
type Repository interface {
	// FetchRevision returns the store's current revision identifier for
	// the table file. Absence of the file, auth failures and transport
	// errors all surface as a revision error with an empty identifier;
	// callers must check before attempting a write.
	FetchRevision(ctx context.Context) (string, error)

	// ReadTable fetches and parses the table file. The returned table is
	// always usable: on any failure it is empty with the fixed column
	// schema and the error is an informational notice, not a fault.
	ReadTable(ctx context.Context) (*domain.Table, error)

	// WriteTable serializes the full table and submits it together with
	// the revision the caller just fetched. The store rejects the update
	// when the revision no longer matches its head.
	WriteTable(ctx context.Context, table *domain.Table, revision, message string) error
}

// Client implements Repository against the GitHub REST API.
type Client struct {
	cfg   config.GitHubConfig
	http  *http.Client
	codec *Codec
}

// New creates a new store client from the GitHub configuration.
func New(cfg config.GitHubConfig) *Client {
	return &Client{
		cfg:   cfg,
		http:  &http.Client{Timeout: cfg.RequestTimeout},
		codec: NewCodec(),
	}
}

func (c *Client) contentsURL() string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		c.cfg.APIBaseURL, c.cfg.Owner, c.cfg.Repo, c.cfg.FilePath)
}

func (c *Client) rawURL() string {
	return fmt.Sprintf("%s/%s/%s/%s/%s",
		c.cfg.RawBaseURL, c.cfg.Owner, c.cfg.Repo, c.cfg.Branch, c.cfg.FilePath)
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "token "+c.cfg.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
}

// FetchRevision asks the contents API for the file's current blob SHA.
func (c *Client) FetchRevision(ctx context.Context) (string, error) {
	url := c.contentsURL() + "?ref=" + c.cfg.Branch
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.NewRevisionError(c.cfg.FilePath, err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.NewRevisionError(c.cfg.FilePath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logging.Debugf("store: revision fetch returned %d for %s\n", resp.StatusCode, c.cfg.FilePath)
		return "", errors.NewRevisionError(c.cfg.FilePath,
			fmt.Errorf("unexpected status %d", resp.StatusCode)).
			WithContext("status", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewRevisionError(c.cfg.FilePath, err)
	}
	var meta contentsResponse
	if err := sonic.Unmarshal(body, &meta); err != nil {
		return "", errors.NewRevisionError(c.cfg.FilePath, err)
	}
	if meta.SHA == "" {
		return "", errors.NewRevisionError(c.cfg.FilePath, fmt.Errorf("response carried no revision"))
	}
	return meta.SHA, nil
}

// ReadTable fetches the raw file from the read-only distribution endpoint.
// Every failure path degrades to an empty table with the fixed schema; the
// returned error is informational only and the caller can proceed with the
// empty table.
func (c *Client) ReadTable(ctx context.Context) (*domain.Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.rawURL(), nil)
	if err != nil {
		return domain.NewTable(), errors.NewStoreError("read table", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logging.Debugf("store: read failed, starting with an empty table: %v\n", err)
		return domain.NewTable(), errors.NewStoreError("read table", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logging.Debugf("store: read returned %d, starting with an empty table\n", resp.StatusCode)
		return domain.NewTable(), errors.NewStoreError("read table",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewTable(), errors.NewStoreError("read table", err)
	}

	table, err := c.codec.Decode(body)
	if err != nil {
		logging.Debugf("store: malformed table content, starting empty: %v\n", err)
		return domain.NewTable(), errors.NewStoreError("parse table", err)
	}
	return table, nil
}

// WriteTable pushes the full table as a create-or-update against the
// contents API. The revision must be the one the caller just fetched.
func (c *Client) WriteTable(ctx context.Context, table *domain.Table, revision, message string) error {
	if revision == "" {
		return errors.NewRevisionError(c.cfg.FilePath,
			fmt.Errorf("write attempted without a revision"))
	}

	raw, err := c.codec.Encode(table)
	if err != nil {
		return errors.NewStoreError("encode table", err)
	}

	payload, err := sonic.Marshal(updateRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(raw),
		SHA:     revision,
		Branch:  c.cfg.Branch,
	})
	if err != nil {
		return errors.NewStoreError("encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.contentsURL(), bytes.NewReader(payload))
	if err != nil {
		return errors.NewStoreError("write table", err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.NewStoreError("write table", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	var apiErr apiError
	if err := sonic.Unmarshal(body, &apiErr); err != nil {
		apiErr.Message = string(body)
	}
	return errors.NewWriteRejectedError(resp.StatusCode, apiErr.Message)
}
