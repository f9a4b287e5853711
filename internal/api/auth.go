package api

import "context"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest carries the fields required to create an account.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	if err := c.post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Signup creates an account and returns the freshly issued session.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*Session, error) {
	var session Session
	if err := c.post(ctx, "/auth/signup", req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Logout invalidates the current token server-side. Best effort; the caller
// clears local state regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}
