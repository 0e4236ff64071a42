package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"placementdesk/pkg/types"

	"github.com/sirupsen/logrus"
)

// Client talks to a running placementdesk service over its JSON API. The
// session cookie issued at login rides in the jar for every later call. It
// implements review.Backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logrus.FieldLogger
}

func New(baseURL string, logger logrus.FieldLogger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/") + "/api/v1",
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}, nil
}

func (c *Client) Login(ctx context.Context, email, password string) error {
	payload := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/admin/login", payload, nil)
}

func (c *Client) ListApplications(ctx context.Context) ([]*types.JobApplication, error) {
	var envelope struct {
		JobApplications []*types.JobApplication `json:"jobApplications"`
	}
	if err := c.do(ctx, http.MethodGet, "/jobApplication/getall", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.JobApplications, nil
}

func (c *Client) ApplicationByReg(ctx context.Context, reg string) (*types.JobApplication, error) {
	var envelope struct {
		JobApplication *types.JobApplication `json:"jobApplication"`
	}
	if err := c.do(ctx, http.MethodGet, "/jobApplication/detail/"+reg, nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.JobApplication == nil {
		return nil, types.ErrApplicationNotFound
	}
	return envelope.JobApplication, nil
}

func (c *Client) UpdateField(ctx context.Context, id, field, value string) (*types.JobApplication, error) {
	return c.updateApplication(ctx, id, map[string]any{field: value})
}

func (c *Client) UpdateVerification(ctx context.Context, id string, updates map[string]types.Verification) (*types.JobApplication, error) {
	return c.updateApplication(ctx, id, map[string]any{"verificationUpdates": updates})
}

func (c *Client) updateApplication(ctx context.Context, id string, payload map[string]any) (*types.JobApplication, error) {
	var envelope struct {
		JobApplication *types.JobApplication `json:"jobApplication"`
	}
	if err := c.do(ctx, http.MethodPut, "/jobApplication/update/"+id, payload, &envelope); err != nil {
		return nil, err
	}
	if envelope.JobApplication == nil {
		return nil, fmt.Errorf("update response missing jobApplication")
	}
	return envelope.JobApplication, nil
}

// UploadProof sends the document as a multipart payload through the same
// partial-update endpoint.
func (c *Client) UploadProof(ctx context.Context, id, field, fileName, contentType string, file io.Reader) (*types.JobApplication, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile(field, fileName)
	if err != nil {
		return nil, fmt.Errorf("create multipart payload: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("read proof document: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/jobApplication/update/"+id, &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var envelope struct {
		JobApplication *types.JobApplication `json:"jobApplication"`
	}
	if err := c.send(req, &envelope); err != nil {
		return nil, err
	}
	if envelope.JobApplication == nil {
		return nil, fmt.Errorf("update response missing jobApplication")
	}
	return envelope.JobApplication, nil
}

// Companies tolerates the envelope variants historical deployments emit:
// companies, jobs, or data.companies.
func (c *Client) Companies(ctx context.Context) ([]*types.Company, error) {
	var envelope struct {
		Companies []*types.Company `json:"companies"`
		Jobs      []*types.Company `json:"jobs"`
		Data      struct {
			Companies []*types.Company `json:"companies"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/company/all", nil, &envelope); err != nil {
		return nil, err
	}

	switch {
	case envelope.Companies != nil:
		return envelope.Companies, nil
	case envelope.Jobs != nil:
		return envelope.Jobs, nil
	default:
		return envelope.Data.Companies, nil
	}
}

// Company falls back from the company key to job, then to a bare posting
// body.
func (c *Client) Company(ctx context.Context, id string) (*types.Company, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, "/company/get/"+id, nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Company *types.Company `json:"company"`
		Job     *types.Company `json:"job"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Company != nil {
			return envelope.Company, nil
		}
		if envelope.Job != nil {
			return envelope.Job, nil
		}
	}

	var company types.Company
	if err := json.Unmarshal(raw, &company); err != nil || company.ID == "" {
		return nil, types.ErrCompanyNotFound
	}
	return &company, nil
}

func (c *Client) UpdateCompany(ctx context.Context, id string, payload *types.UpdateCompany) error {
	var outcome struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPut, "/company/update/"+id, payload, &outcome); err != nil {
		return err
	}
	if !outcome.Success {
		return fmt.Errorf("update company %s: %s", id, outcome.Message)
	}
	return nil
}

func (c *Client) DeleteCompany(ctx context.Context, id string) error {
	var outcome struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodDelete, "/company/delete/"+id, nil, &outcome); err != nil {
		return err
	}
	if !outcome.Success {
		return fmt.Errorf("delete company %s: %s", id, outcome.Message)
	}
	return nil
}

func (c *Client) SendCorrectionEmail(ctx context.Context, email, message string) error {
	payload := map[string]string{"email": email, "message": message}
	return c.do(ctx, http.MethodPost, "/sendCorrectionEmail", payload, nil)
}

func (c *Client) SendBulkEmail(ctx context.Context, recipients []string, subject, message string) (string, error) {
	payload := map[string]any{
		"recipients": recipients,
		"subject":    subject,
		"message":    message,
	}
	var envelope struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/sendEmail", payload, &envelope); err != nil {
		return "", err
	}
	return envelope.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	raw, err := c.doRaw(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s payload: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	var raw json.RawMessage
	if err := c.send(req, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s response: %w", req.Method, req.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(data, &failure); err == nil && failure.Message != "" {
			return fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, failure.Message)
		}
		return fmt.Errorf("%s %s: unexpected status %d", req.Method, req.URL.Path, resp.StatusCode)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
