// Package api is the typed REST client for the tailoring backend. All calls
// go over HTTPS with the backend-issued bearer token; failures come back as
// *APIError with the parsed body attached.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/go-resty/resty/v2"

	"jobtailor/internal/config"
	"jobtailor/internal/dto"
	"jobtailor/internal/model"
)

type Client struct {
	http  *resty.Client
	token string
}

func NewClient(cfg *config.APIConfig) *Client {
	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)
	return &Client{http: http}
}

// SetToken installs the backend-issued bearer token used by all
// authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

// BaseURL exposes the configured backend origin, needed by the stream client
// to build its connection URL.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if c.token != "" {
		req.SetAuthToken(c.token)
	}
	return req
}

func decode(resp *resty.Response, err error, out any) error {
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if resp.IsError() {
		return newAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// --- auth ---

func (c *Client) Signup(ctx context.Context, email, password string) error {
	resp, err := c.request(ctx).
		SetFormData(map[string]string{"username": email, "password": password}).
		Post(routeSignup)
	return decode(resp, err, nil)
}

func (c *Client) CredentialsLogin(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var auth dto.AuthResponse
	resp, err := c.request(ctx).
		SetFormData(map[string]string{"username": email, "password": password}).
		Post(routeCredentialsLogin)
	if err := decode(resp, err, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

func (c *Client) GoogleSignIn(ctx context.Context, idToken, accessToken string) (*dto.AuthResponse, error) {
	var auth dto.AuthResponse
	resp, err := c.request(ctx).
		SetBody(dto.GoogleSignInRequest{IDToken: idToken, AccessToken: accessToken}).
		Post(routeGoogleSignIn)
	if err := decode(resp, err, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// --- user / resume ---

func (c *Client) GetUser(ctx context.Context) (*model.User, error) {
	var user model.User
	resp, err := c.request(ctx).Get(routeGetUser)
	if err := decode(resp, err, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UploadResume ships a resume file to the backend for parsing. Parsing and
// extraction happen server-side; the client only sends bytes.
func (c *Client) UploadResume(ctx context.Context, filename string, file io.Reader) error {
	resp, err := c.request(ctx).
		SetFileReader("file", filename, file).
		Post(routeUploadResume)
	return decode(resp, err, nil)
}

func (c *Client) SaveResume(ctx context.Context, resume *model.Resume) (*model.User, error) {
	var user model.User
	resp, err := c.request(ctx).
		SetBody(dto.SaveResumeRequest{Resume: *resume}).
		Post(routeSaveResume)
	if err := decode(resp, err, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ResumeStatus reports whether the uploaded resume has finished extraction.
func (c *Client) ResumeStatus(ctx context.Context) (json.RawMessage, error) {
	resp, err := c.request(ctx).Get(routeGetResumeStatus)
	var raw json.RawMessage
	if err := decode(resp, err, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// --- job applications ---

// StartGeneration kicks off the pipeline for one job posting and returns the
// initial snapshot. The backend wraps the snapshot in an envelope on this
// route; older deployments returned it bare, so both shapes are accepted.
func (c *Client) StartGeneration(ctx context.Context, req dto.StartGenerationRequest) (*model.JobApplicationSnapshot, error) {
	resp, err := c.request(ctx).SetBody(req).Post(routeStartGeneration)
	var envelope struct {
		JobApplication *model.JobApplicationSnapshot `json:"job_application"`
	}
	if err := decode(resp, err, &envelope); err != nil {
		return nil, err
	}
	if envelope.JobApplication != nil {
		return envelope.JobApplication, nil
	}
	var snapshot model.JobApplicationSnapshot
	if err := json.Unmarshal(resp.Body(), &snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snapshot, nil
}

func (c *Client) GetJobApplication(ctx context.Context, id string) (*model.JobApplicationSnapshot, error) {
	var snapshot model.JobApplicationSnapshot
	resp, err := c.request(ctx).Get(routeApplication(id))
	if err := decode(resp, err, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (c *Client) DeleteJobApplication(ctx context.Context, id string) error {
	resp, err := c.request(ctx).Delete(routeApplication(id))
	return decode(resp, err, nil)
}

func (c *Client) ListJobApplications(ctx context.Context, offset, limit int) (*model.PaginatedJobApplicationPreviews, error) {
	var page model.PaginatedJobApplicationPreviews
	resp, err := c.request(ctx).
		SetQueryParam("offset", strconv.Itoa(offset)).
		SetQueryParam("limit", strconv.Itoa(limit)).
		Get(routeListApps)
	if err := decode(resp, err, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) SearchJobApplications(ctx context.Context, searchTerm string, offset, limit int) (*model.PaginatedJobApplicationPreviews, error) {
	var page model.PaginatedJobApplicationPreviews
	resp, err := c.request(ctx).
		SetQueryParam("search_term", searchTerm).
		SetQueryParam("offset", strconv.Itoa(offset)).
		SetQueryParam("limit", strconv.Itoa(limit)).
		Get(routeSearchApps)
	if err := decode(resp, err, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	var stats dto.StatsResponse
	resp, err := c.request(ctx).Get(routeStats)
	if err := decode(resp, err, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// UpdateGeneratedResume replaces the generated resume document wholesale.
func (c *Client) UpdateGeneratedResume(ctx context.Context, id string, resume *model.Resume) (*model.JobApplicationSnapshot, error) {
	var snapshot model.JobApplicationSnapshot
	resp, err := c.request(ctx).
		SetBody(dto.UpdateGeneratedResumeRequest{Resume: *resume}).
		Put(routeUpdateResume(id))
	if err := decode(resp, err, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// UpdateGeneratedCoverLetter replaces the cover letter text wholesale.
func (c *Client) UpdateGeneratedCoverLetter(ctx context.Context, id, content string) (*model.JobApplicationSnapshot, error) {
	var snapshot model.JobApplicationSnapshot
	resp, err := c.request(ctx).
		SetBody(dto.UpdateGeneratedCoverLetterRequest{CoverLetterContent: content}).
		Put(routeUpdateCoverLetter(id))
	if err := decode(resp, err, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
