package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/qubelint-io/qapi-client/internal/http"
	"github.com/qubelint-io/qapi-client/pkg/qapi"
)

// UsersClient implements qapi.UsersClient.
type UsersClient struct {
	httpClient *http.Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client) *UsersClient {
	return &UsersClient{
		httpClient: httpClient,
	}
}

// Search implements qapi.UsersClient.Search.
func (c *UsersClient) Search() *qapi.UserSearch {
	return qapi.NewUserSearch(newSearchExecutor[qapi.User](c.httpClient, "/api/users/search", "users"))
}

// Create implements qapi.UsersClient.Create.
func (c *UsersClient) Create(ctx context.Context, request *qapi.UserCreateRequest) (*qapi.User, error) {
	form := url.Values{}
	form.Set("login", request.Login)
	form.Set("name", request.Name)
	form.Set("local", strconv.FormatBool(request.Local))

	if request.Email != "" {
		form.Set("email", request.Email)
	}

	if request.Password != "" {
		form.Set("password", request.Password)
	}

	resp, err := c.httpClient.PostForm(ctx, "/api/users/create", form)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	var envelope struct {
		User qapi.User `json:"user"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &envelope.User, nil
}

// Deactivate implements qapi.UsersClient.Deactivate.
func (c *UsersClient) Deactivate(ctx context.Context, login string) error {
	form := url.Values{}
	form.Set("login", login)

	_, err := c.httpClient.PostForm(ctx, "/api/users/deactivate", form)
	if err != nil {
		return fmt.Errorf("deactivating user: %w", err)
	}

	return nil
}

// UpdateLogin implements qapi.UsersClient.UpdateLogin. The endpoint was
// removed server-side, so the error is produced locally without a round
// trip.
func (c *UsersClient) UpdateLogin(ctx context.Context, login, newLogin string) error {
	return qapi.NewRemovedAPIError("api/users/update_login", "api/v2/users-management/users")
}
