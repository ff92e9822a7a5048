package api

import (
	"context"
	"net/http"

	"plannr/internal/domain"
)

// Me returns the user the ambient backend token belongs to.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	e := endpoint{op: "me", method: http.MethodGet, path: "/api/users/me", failMsg: "Not signed in"}
	var w userWire
	if _, err := c.call(ctx, e, &w); err != nil {
		return nil, err
	}
	u := userFromWire(w)
	if u == nil {
		return nil, invalidResponse(e.op, "Invalid user data")
	}
	return u, nil
}

// SignUp creates an account. The token is empty when the backend did not start a session.
func (c *Client) SignUp(ctx context.Context, in domain.SignUpInput) (*domain.User, string, error) {
	e := endpoint{
		op:           "sign up",
		method:       http.MethodPost,
		path:         "/api/users",
		body:         signUpToWire(in),
		public:       true,
		failMsg:      "Could not create account",
		preferDetail: true,
	}
	return c.authenticate(ctx, e)
}

func (c *Client) SignIn(ctx context.Context, creds domain.Credentials) (*domain.User, string, error) {
	e := endpoint{
		op:           "sign in",
		method:       http.MethodPost,
		path:         "/api/auth/signin",
		body:         credentialsToWire(creds),
		public:       true,
		failMsg:      "Incorrect email or password",
		preferDetail: true,
	}
	return c.authenticate(ctx, e)
}

func (c *Client) authenticate(ctx context.Context, e endpoint) (*domain.User, string, error) {
	var w userWire
	res, err := c.call(ctx, e, &w)
	if err != nil {
		return nil, "", err
	}
	u := userFromWire(w)
	if u == nil {
		return nil, "", invalidResponse(e.op, "Invalid user data")
	}
	return u, c.sessionToken(res), nil
}

// SignOut invalidates the ambient backend session.
func (c *Client) SignOut(ctx context.Context) error {
	e := endpoint{op: "sign out", method: http.MethodDelete, path: "/api/auth/signout", failMsg: "Could not sign out"}
	_, err := c.call(ctx, e, nil)
	return err
}
