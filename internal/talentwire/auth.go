package talentwire

import "context"

const (
	registerPath = "/register"
	loginPath    = "/login"
)

type credentialsBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates an account. It does not log the user in; call Login after.
func (c *Client) Register(ctx context.Context, username, password string) error {
	body := credentialsBody{Username: username, Password: password}

	return c.postJSON(ctx, "register", registerPath, body, nil, false)
}

// Login exchanges credentials for an access token. Persisting the token is
// the caller's job; the client itself never writes the session.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := credentialsBody{Username: username, Password: password}

	var response loginResponse
	if err := c.postJSON(ctx, "login", loginPath, body, &response, false); err != nil {
		return "", err
	}

	return response.AccessToken, nil
}
