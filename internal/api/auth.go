package api

import (
	"context"
	"net/http"
	"net/url"

	"tally/internal/core"
)

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. The contract is
// form-encoded with the email submitted as `username`.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{
		"username": {email},
		"password": {password},
	}

	var out loginResponse
	if err := c.doForm(ctx, http.MethodPost, "/auth/login", form.Encode(), &out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// Signup creates an account. It does not authenticate; the caller is expected
// to follow up with Login.
func (c *Client) Signup(ctx context.Context, email, password string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/signup", signupRequest{
		Email:    email,
		Password: password,
	}, nil)
}

// CurrentUser fetches the profile for the installed token. A failure here
// means the token is not usable.
func (c *Client) CurrentUser(ctx context.Context) (core.UserProfile, error) {
	var out core.UserProfile
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return core.UserProfile{}, err
	}
	return out, nil
}
