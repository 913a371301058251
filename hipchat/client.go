// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hipchat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bureau-foundation/hipchat/lib/netutil"
	"github.com/bureau-foundation/hipchat/lib/secret"
	"github.com/bureau-foundation/hipchat/lib/version"
)

// DefaultBaseURL is the HipChat v1 REST endpoint.
const DefaultBaseURL = "https://api.hipchat.com/v1/"

// DefaultFormat is the response format requested on GET calls.
const DefaultFormat = "json"

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the API base including the version segment. Default:
	// https://api.hipchat.com/v1/
	BaseURL string
	// Token is the API auth token. Required. The caller retains
	// ownership: NewClient does not copy or close it, so the Buffer must
	// stay open for as long as the Client is used.
	Token *secret.Buffer
	// Format is sent as the format parameter on GET calls. Default: json
	Format string
	// HTTPClient is used for all requests. If nil, http.DefaultClient is used.
	HTTPClient *http.Client
	// Timeout bounds each request, on top of any deadline in the
	// caller's context. Zero means no client-imposed bound.
	Timeout time.Duration
	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Client issues authenticated API calls and caches the room and user
// lists.
type Client struct {
	baseURL    string
	token      *secret.Buffer
	format     string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger

	mu    sync.Mutex
	rooms []*Room
	users []*User
}

// NewClient creates a Client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.Token == nil || config.Token.Len() == 0 {
		return nil, fmt.Errorf("hipchat: Token is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("hipchat: invalid BaseURL %q: %w", baseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("hipchat: BaseURL %q must be http or https", baseURL)
	}
	// Paths are appended by concatenation, so the base must end in a
	// slash or "v1" would be replaced rather than extended.
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	format := config.Format
	if format == "" {
		format = DefaultFormat
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		token:      config.Token,
		format:     format,
		httpClient: httpClient,
		timeout:    config.Timeout,
		logger:     logger,
	}, nil
}

// BaseURL returns the normalized API base URL (always slash-terminated).
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CloseIdleConnections closes idle connections in the HTTP transport's
// pool.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// Call issues one API request and returns the JSON response body.
//
// path is relative to the base URL ("rooms/list"). For GET, parameters,
// format, and auth_token are sent in the query string and there is no
// body. For any other method, only auth_token goes in the query string
// and parameters are form-encoded into the body.
//
// A failure to obtain a response is a *TransportError. A 4xx/5xx with
// the API's error envelope is an *APIError. A body that is not JSON, or
// an error status without an envelope, is a *ProtocolError. There is no
// retry.
func (c *Client) Call(ctx context.Context, path, method string, parameters url.Values) (json.RawMessage, error) {
	path = strings.TrimLeft(path, "/")
	c.logger.Info("hipchat request",
		"method", method,
		"path", path,
		"parameters", parameterNames(parameters),
	)

	query := url.Values{}
	var body io.Reader
	if method == http.MethodGet {
		for key, values := range parameters {
			query[key] = slices.Clone(values)
		}
		query.Set("format", c.format)
	} else if len(parameters) > 0 {
		body = strings.NewReader(parameters.Encode())
	}

	requestURL := c.baseURL + path
	c.logger.Debug("hipchat request url", "url", requestURL+"?"+query.Encode())
	query.Set("auth_token", c.token.String())
	requestURL += "?" + query.Encode()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("hipchat: failed to create request: %w", redactURL(err))
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", version.UserAgent())

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: redactURL(err)}
	}
	defer response.Body.Close()

	responseBody, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, errorFromResponse(path, response.StatusCode, responseBody)
	}

	if !json.Valid(responseBody) {
		return nil, &ProtocolError{
			Path:       path,
			StatusCode: response.StatusCode,
			Body:       netutil.Snippet(responseBody, 512),
			Err:        errors.New("response body is not valid JSON"),
		}
	}
	return json.RawMessage(responseBody), nil
}

// fetch issues a GET and decodes the payload under key into out.
func (c *Client) fetch(ctx context.Context, path string, parameters url.Values, key string, out any) error {
	body, err := c.Call(ctx, path, http.MethodGet, parameters)
	if err != nil {
		return err
	}
	if err := decodeEnvelope(body, key, out); err != nil {
		return &ProtocolError{
			Path:       path,
			StatusCode: http.StatusOK,
			Body:       netutil.Snippet(body, 512),
			Err:        err,
		}
	}
	return nil
}

// ListRooms returns the cached room list, fetching rooms/list first if
// the cache is empty.
func (c *Client) ListRooms(ctx context.Context) ([]*Room, error) {
	c.mu.Lock()
	rooms := slices.Clone(c.rooms)
	c.mu.Unlock()

	if len(rooms) > 0 {
		return rooms, nil
	}
	return c.RefreshRooms(ctx)
}

// RefreshRooms fetches rooms/list and replaces the room cache. Every
// Room in the new cache is a new instance.
func (c *Client) RefreshRooms(ctx context.Context) ([]*Room, error) {
	var records []RoomRecord
	if err := c.fetch(ctx, "rooms/list", nil, "rooms", &records); err != nil {
		return nil, fmt.Errorf("hipchat: listing rooms: %w", err)
	}

	rooms := make([]*Room, 0, len(records))
	for _, record := range records {
		rooms = append(rooms, newRoom(c, record))
	}

	c.mu.Lock()
	c.rooms = rooms
	c.mu.Unlock()

	c.logger.Debug("room cache refreshed", "rooms", len(rooms))
	return slices.Clone(rooms), nil
}

// FindRoomByName returns the cached room with the given name, or an
// error wrapping ErrNotFound.
func (c *Client) FindRoomByName(ctx context.Context, name string) (*Room, error) {
	rooms, err := c.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	if room := roomByName(rooms, name); room != nil {
		return room, nil
	}
	return nil, fmt.Errorf("hipchat: room %q: %w", name, ErrNotFound)
}

// FindRoomByID returns the cached room with the given id, or an error
// wrapping ErrNotFound.
func (c *Client) FindRoomByID(ctx context.Context, id int) (*Room, error) {
	rooms, err := c.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	for _, room := range rooms {
		if room.ID() == id {
			return room, nil
		}
	}
	return nil, fmt.Errorf("hipchat: room %d: %w", id, ErrNotFound)
}

func roomByName(rooms []*Room, name string) *Room {
	for _, room := range rooms {
		if room.Name() == name {
			return room
		}
	}
	return nil
}

// CreateRoomRequest holds parameters for CreateRoom.
type CreateRoomRequest struct {
	Name string
	// Owner becomes the room owner. Required.
	Owner *User
	// Private creates a room visible only to invited members.
	Private bool
	Topic   string
	// GuestAccess enables the guest access URL.
	GuestAccess bool
}

// CreateRoom issues rooms/create, refreshes the room cache, and returns
// the new room looked up by name.
func (c *Client) CreateRoom(ctx context.Context, request CreateRoomRequest) (*Room, error) {
	if request.Name == "" {
		return nil, fmt.Errorf("hipchat: room name is required")
	}
	if request.Owner == nil {
		return nil, fmt.Errorf("hipchat: room owner is required")
	}

	privacy := "public"
	if request.Private {
		privacy = "private"
	}
	parameters := url.Values{
		"name":          {request.Name},
		"owner_user_id": {strconv.Itoa(request.Owner.ID())},
		"privacy":       {privacy},
		"topic":         {request.Topic},
		"guest_access":  {boolParameter(request.GuestAccess)},
	}
	if _, err := c.Call(ctx, "rooms/create", http.MethodPost, parameters); err != nil {
		return nil, fmt.Errorf("hipchat: creating room %q: %w", request.Name, err)
	}
	c.logger.Info("created room", "room", request.Name, "owner_user_id", request.Owner.ID(), "privacy", privacy)

	rooms, err := c.RefreshRooms(ctx)
	if err != nil {
		return nil, err
	}
	if room := roomByName(rooms, request.Name); room != nil {
		return room, nil
	}
	return nil, fmt.Errorf("hipchat: created room %q missing from rooms/list: %w", request.Name, ErrNotFound)
}

// ListUsers returns the cached user list, fetching users/list first if
// the cache is empty.
func (c *Client) ListUsers(ctx context.Context) ([]*User, error) {
	c.mu.Lock()
	users := slices.Clone(c.users)
	c.mu.Unlock()

	if len(users) > 0 {
		return users, nil
	}
	return c.RefreshUsers(ctx)
}

// RefreshUsers fetches users/list and replaces the user cache.
func (c *Client) RefreshUsers(ctx context.Context) ([]*User, error) {
	var records []UserRecord
	if err := c.fetch(ctx, "users/list", nil, "users", &records); err != nil {
		return nil, fmt.Errorf("hipchat: listing users: %w", err)
	}

	users := make([]*User, 0, len(records))
	for _, record := range records {
		users = append(users, &User{record: record})
	}

	c.mu.Lock()
	c.users = users
	c.mu.Unlock()

	c.logger.Debug("user cache refreshed", "users", len(users))
	return slices.Clone(users), nil
}

// FindUserByName returns the cached user with the given name, or an
// error wrapping ErrNotFound.
func (c *Client) FindUserByName(ctx context.Context, name string) (*User, error) {
	users, err := c.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if user.Name() == name {
			return user, nil
		}
	}
	return nil, fmt.Errorf("hipchat: user %q: %w", name, ErrNotFound)
}

// FindUserByID returns the cached user with the given id, or an error
// wrapping ErrNotFound.
func (c *Client) FindUserByID(ctx context.Context, id int) (*User, error) {
	users, err := c.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if user.ID() == id {
			return user, nil
		}
	}
	return nil, fmt.Errorf("hipchat: user %d: %w", id, ErrNotFound)
}

// errorFromResponse builds the error for a non-2xx response.
func errorFromResponse(path string, statusCode int, body []byte) error {
	var envelope struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error == nil {
		return &ProtocolError{
			Path:       path,
			StatusCode: statusCode,
			Body:       netutil.Snippet(body, 512),
		}
	}
	apiErr := envelope.Error
	apiErr.StatusCode = statusCode
	if apiErr.Code == 0 {
		apiErr.Code = statusCode
	}
	return apiErr
}

// redactURL drops the *url.Error wrapper that net/http puts around
// transport failures. Its message quotes the full request URL, which
// includes auth_token.
func redactURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

// parameterNames lists parameter keys for logging. Values are omitted:
// message bodies can be large and topics can be sensitive.
func parameterNames(parameters url.Values) []string {
	names := make([]string, 0, len(parameters))
	for name := range parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func boolParameter(value bool) string {
	if value {
		return "1"
	}
	return "0"
}
