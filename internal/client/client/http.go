package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/alumnet/internal/client/models"
	"github.com/dmitrijs2005/alumnet/internal/common"
)

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	credential *Credential
}

// NewHTTPClient builds a client for the API at baseURL. timeout bounds every
// request; cred supplies the bearer token and may be shared with the session
// manager.
func NewHTTPClient(baseURL string, timeout time.Duration, cred *Credential) *HTTPClient {
	if cred == nil {
		cred = &Credential{}
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		credential: cred,
	}
}

type errorBody struct {
	Message string `json:"message"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token := c.credential.Token(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		return &APIError{Status: resp.StatusCode, Message: eb.Message, Err: mapStatus(resp.StatusCode)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}

type userResponse struct {
	User *models.Identity `json:"user"`
}

func (c *HTTPClient) Me(ctx context.Context) (*models.Identity, error) {
	var resp userResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("%w: response without user", ErrUnexpectedStatus)
	}
	return resp.User, nil
}

type loginResponse struct {
	Token string           `json:"token"`
	User  *models.Identity `json:"user"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, *models.Identity, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", models.Credentials{Email: email, Password: password}, &resp)
	if err != nil {
		return "", nil, err
	}
	if resp.Token == "" || resp.User == nil {
		return "", nil, fmt.Errorf("%w: incomplete login response", ErrUnexpectedStatus)
	}
	return resp.Token, resp.User, nil
}

func (c *HTTPClient) Register(ctx context.Context, r models.Registration) (*models.RegistrationResult, error) {
	var resp models.RegistrationResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", r, &resp); err != nil {
		return nil, err
	}
	if resp.Email == "" {
		resp.Email = r.Email
	}
	return &resp, nil
}

type messageResponse struct {
	Message string `json:"message"`
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	var resp messageResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/verify-otp", models.OTPVerification{Email: email, OTP: otp}, &resp)
	return resp.Message, err
}

func (c *HTTPClient) ResendOTP(ctx context.Context, email string) (string, error) {
	var resp messageResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/resend-otp", map[string]string{"email": email}, &resp)
	return resp.Message, err
}

func (c *HTTPClient) Directory(ctx context.Context, q DirectoryQuery) ([]models.Identity, error) {
	path := "/api/users/directory"
	v := url.Values{}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if len(v) > 0 {
		path += "?" + v.Encode()
	}

	var resp struct {
		Users []models.Identity `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (c *HTTPClient) User(ctx context.Context, id string) (*models.Identity, error) {
	var resp userResponse
	if err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, ErrNotFound
	}
	return resp.User, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, u models.ProfileUpdate) (string, *models.Identity, error) {
	var resp struct {
		Message string           `json:"message"`
		User    *models.Identity `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/users/profile", u, &resp); err != nil {
		return "", nil, err
	}
	return resp.Message, resp.User, nil
}

func (c *HTTPClient) Jobs(ctx context.Context) ([]models.JobPosting, error) {
	var resp struct {
		Jobs []models.JobPosting `json:"jobs"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/jobs", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}

func (c *HTTPClient) CreateJob(ctx context.Context, j models.NewJob) (string, *models.JobPosting, error) {
	var resp struct {
		Message string             `json:"message"`
		Job     *models.JobPosting `json:"job"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/jobs", j, &resp); err != nil {
		return "", nil, err
	}
	return resp.Message, resp.Job, nil
}
