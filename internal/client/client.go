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
	"strings"
	"time"

	"team-allocation-service/internal/allocation"
	"team-allocation-service/internal/domain"
)

// Client provides typed access to the allocation API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option customises client instantiation.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithToken sends the token as a bearer Authorization header.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// New constructs a Client pointing at the provided API base URL.
func New(base string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = "http://localhost:8080"
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "http://" + trimmed
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	cli := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli, nil
}

// APIError represents an error response from the API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api request failed with status %d", e.Status)
	}
	return fmt.Sprintf("api request failed (%d %s): %s", e.Status, e.Code, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body any, v any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	endpoint := c.baseURL + path
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &allocation.NetworkError{Err: fmt.Errorf("%s %s: %w", method, path, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return extractError(resp)
	}

	if v == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func extractError(resp *http.Response) APIError {
	apiErr := APIError{Status: resp.StatusCode}

	data, err := io.ReadAll(resp.Body)
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		apiErr.Message = strings.TrimSpace(string(data))
		return apiErr
	}
	apiErr.Code = payload.Error.Code
	apiErr.Message = strings.TrimSpace(payload.Error.Message)
	return apiErr
}

// Team reflects API team payloads.
type Team struct {
	TeamID   string   `json:"team_id"`
	TeamName string   `json:"team_name"`
	Members  []Member `json:"members"`
}

// Member reflects API member payloads. TeamID is nil for unassigned members.
type Member struct {
	MemberID    string  `json:"member_id"`
	StudentName string  `json:"student_name"`
	Role        string  `json:"role"`
	TeamID      *string `json:"team_id"`
}

// TransferList is the starting state of a membership edit.
type TransferList struct {
	TeamID    string   `json:"team_id" yaml:"team_id"`
	Available []string `json:"available" yaml:"available"`
	Assigned  []string `json:"assigned" yaml:"assigned"`
}

// Teams returns every team with its members.
func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	var resp struct {
		Teams []Team `json:"teams"`
	}
	if err := c.do(ctx, http.MethodGet, "/team/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Teams, nil
}

// Team fetches one team with its members.
func (c *Client) Team(ctx context.Context, teamID string) (Team, error) {
	path := fmt.Sprintf("/team/get?team_id=%s", url.QueryEscape(teamID))
	var team Team
	if err := c.do(ctx, http.MethodGet, path, nil, &team); err != nil {
		return Team{}, err
	}
	return team, nil
}

// Members lists members, restricted to teamID when it is not empty.
func (c *Client) Members(ctx context.Context, teamID string) ([]Member, error) {
	path := "/members/list"
	if teamID != "" {
		path += "?team_id=" + url.QueryEscape(teamID)
	}
	var resp struct {
		Members []Member `json:"members"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Members, nil
}

// TransferList fetches the available and assigned halves for teamID.
func (c *Client) TransferList(ctx context.Context, teamID string) (TransferList, error) {
	path := fmt.Sprintf("/team/transferList?team_id=%s", url.QueryEscape(teamID))
	var list TransferList
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return TransferList{}, err
	}
	return list, nil
}

// Assign links memberID to teamID on the server.
func (c *Client) Assign(ctx context.Context, memberID domain.MemberID, teamID domain.TeamID) error {
	body := map[string]string{
		"member_id": string(memberID),
		"team_id":   string(teamID),
	}
	err := c.do(ctx, http.MethodPost, "/members/assign", body, nil)
	return classify(memberID, err)
}

// Unassign detaches memberID, refusing when it has moved away from teamID.
func (c *Client) Unassign(ctx context.Context, memberID domain.MemberID, teamID domain.TeamID) error {
	body := map[string]string{
		"member_id": string(memberID),
	}
	if teamID != "" {
		body["team_id"] = string(teamID)
	}
	err := c.do(ctx, http.MethodPost, "/members/unassign", body, nil)
	return classify(memberID, err)
}

func classify(memberID domain.MemberID, err error) error {
	var apiErr APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.Status {
	case http.StatusNotFound:
		return &allocation.NotFoundError{MemberID: memberID, Err: fmt.Errorf("%w: %w", domain.ErrNotFound, apiErr)}
	case http.StatusConflict:
		return &allocation.ConflictError{MemberID: memberID, Err: fmt.Errorf("%w: %w", domain.ErrConflict, apiErr)}
	default:
		return apiErr
	}
}

var _ allocation.Assigner = (*Client)(nil)
