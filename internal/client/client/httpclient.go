package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/aycode/internal/common"
)

// RegisterRequest mirrors the registration form of the API.
type RegisterRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phonenumber"`
	DateOfBirth  string `json:"dateofbirth"`
	Password     string `json:"password"`
	Gender       string `json:"gender"`
	Subscription string `json:"subscription"`
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	Username  string
	ExpiresAt time.Time
}

type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"isAdmin"`
}

type ProblemSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
}

type Problem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Difficulty  string    `json:"difficulty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// NewHTTPClient builds a client for the server at baseURL ("http://host:port").
// A bare host:port is treated as http.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing server URL: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("server URL %q has no host", baseURL)
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Host is the key under which the session for this server is stored.
func (c *HTTPClient) Host() string {
	u, _ := url.Parse(c.baseURL)
	return u.Host
}

// SetToken sets the session token sent as a bearer credential.
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) Register(ctx context.Context, r RegisterRequest) error {
	_, err := c.send(ctx, http.MethodPost, "/api/auth/register", r, nil)
	return err
}

// Login exchanges credentials for a session token, read from the cookie the
// server sets.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*Session, error) {
	var body struct {
		Username string `json:"username"`
	}
	resp, err := c.send(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, &body)
	if err != nil {
		return nil, err
	}

	for _, ck := range resp.Cookies() {
		if ck.Name == common.SessionCookieName && ck.Value != "" {
			s := &Session{Token: ck.Value, Username: body.Username}
			if ck.MaxAge > 0 {
				s.ExpiresAt = time.Now().Add(time.Duration(ck.MaxAge) * time.Second)
			}
			return s, nil
		}
	}
	return nil, fmt.Errorf("login response carried no session cookie")
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.send(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	return err
}

func (c *HTTPClient) Me(ctx context.Context) (*User, error) {
	var body struct {
		User User `json:"user"`
	}
	if _, err := c.send(ctx, http.MethodGet, "/api/auth/me", nil, &body); err != nil {
		return nil, err
	}
	return &body.User, nil
}

func (c *HTTPClient) ListProblems(ctx context.Context) ([]ProblemSummary, error) {
	var out []ProblemSummary
	if _, err := c.send(ctx, http.MethodGet, "/api/problems", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetProblem(ctx context.Context, id string) (*Problem, error) {
	var out Problem
	if _, err := c.send(ctx, http.MethodGet, "/api/problems/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateProblem(ctx context.Context, title, description, difficulty string) (*Problem, error) {
	var out Problem
	payload := map[string]string{"title": title, "description": description, "difficulty": difficulty}
	if _, err := c.send(ctx, http.MethodPost, "/api/problems", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SetRole(ctx context.Context, userID, role string) error {
	_, err := c.send(ctx, http.MethodPut, "/api/admin/users/"+url.PathEscape(userID)+"/role",
		map[string]string{"role": role}, nil)
	return err
}

// --- helpers below ---

func (c *HTTPClient) send(ctx context.Context, method, path string, payload, result any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling payload: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode >= 400 {
		return resp, parseErrorResponse(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return resp, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp, nil
}

func parseErrorResponse(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode:    resp.StatusCode,
		CorrelationID: resp.Header.Get(common.CorrelationIDHeaderName),
	}

	var errResp struct {
		Error string `json:"error"`
	}
	b, err := io.ReadAll(resp.Body)
	if err == nil && json.Unmarshal(b, &errResp) == nil && errResp.Error != "" {
		apiErr.Message = errResp.Error
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
