package rtm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/dwaring87/rtm-api/internal/domain"
)

// GetFrob starts the auth handshake by fetching a frob, the one-shot token
// the user carries to the authorization page.
func (c *Client) GetFrob(ctx context.Context) (string, error) {
	rsp, err := c.call(ctx, "rtm.auth.getFrob", nil)
	if err != nil {
		return "", err
	}

	var out struct {
		Frob string `json:"frob"`
	}
	if err := json.Unmarshal(rsp, &out); err != nil {
		return "", fmt.Errorf("decode frob: %w", err)
	}
	if out.Frob == "" {
		return "", fmt.Errorf("service returned empty frob")
	}
	return out.Frob, nil
}

// AuthURL builds the signed browser URL the user visits to grant this API
// key the given permission level ("read", "write", or "delete").
func (c *Client) AuthURL(frob, perms string) string {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("perms", perms)
	q.Set("frob", frob)
	q.Set("api_sig", sign(c.secret, q))
	return c.authBase + "?" + q.Encode()
}

// GetToken exchanges an authorized frob for a token and the identity of the
// user who granted it. The token is installed on the client.
func (c *Client) GetToken(ctx context.Context, frob string) (domain.Auth, error) {
	rsp, err := c.call(ctx, "rtm.auth.getToken", map[string]string{"frob": frob})
	if err != nil {
		return domain.Auth{}, err
	}

	auth, err := decodeAuth(rsp)
	if err != nil {
		return domain.Auth{}, err
	}
	c.SetAuth(auth.Token, auth.User.ID)
	return auth, nil
}

// CheckToken verifies the installed token is still valid and returns the
// user it belongs to.
func (c *Client) CheckToken(ctx context.Context) (domain.Auth, error) {
	rsp, err := c.call(ctx, "rtm.auth.checkToken", nil)
	if err != nil {
		return domain.Auth{}, err
	}
	return decodeAuth(rsp)
}

func decodeAuth(rsp []byte) (domain.Auth, error) {
	var out struct {
		Auth struct {
			Token string   `json:"token"`
			Perms string   `json:"perms"`
			User  wireUser `json:"user"`
		} `json:"auth"`
	}
	if err := json.Unmarshal(rsp, &out); err != nil {
		return domain.Auth{}, fmt.Errorf("decode auth: %w", err)
	}
	return domain.Auth{
		Token: out.Auth.Token,
		Perms: out.Auth.Perms,
		User: domain.User{
			ID:       out.Auth.User.ID,
			Username: out.Auth.User.Username,
			FullName: out.Auth.User.FullName,
		},
	}, nil
}
