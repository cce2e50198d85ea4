package seranking

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/codes"
)

// Token returns the session token the client currently holds, empty when
// the client has never authenticated.
func (c *Client) Token() string {
	return c.token
}

// ensureToken returns the held token without network traffic when one
// was loaded from the store or issued earlier in this process, and logs
// in otherwise.
func (c *Client) ensureToken(ctx context.Context) (string, error) {
	if c.token != "" {
		return c.token, nil
	}
	return c.Login(ctx, "", "")
}

// Login authenticates against the remote service and persists the issued
// token, overwriting any stored one. Empty arguments fall back to the
// configured credentials. A non-empty password is the cleartext form and
// is digested locally before transmission; otherwise the configured md5
// digest is sent as-is.
func (c *Client) Login(ctx context.Context, login, password string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	if login == "" {
		login = c.login
	}
	pass := c.passwordMD5
	if password != "" {
		digest := md5.Sum([]byte(password))
		pass = hex.EncodeToString(digest[:])
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"method": "login",
			"login":  login,
			"pass":   pass,
		}).
		Get("")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "login request failed")
		return "", fmt.Errorf("login: %w", err)
	}
	if !res.IsSuccess() {
		authErr := &AuthError{StatusCode: res.StatusCode()}
		span.RecordError(authErr)
		span.SetStatus(codes.Error, "login rejected")
		return "", authErr
	}

	var body struct {
		Token string `json:"token"`
	}
	err = json.Unmarshal(res.Body(), &body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode login response")
		return "", fmt.Errorf("login: decode response: %w", err)
	}

	c.token = body.Token
	err = c.store.Set(ctx, tokenKey, []byte(body.Token))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to persist token")
		return "", fmt.Errorf("persist token: %w", err)
	}
	return c.token, nil
}

// Logout invalidates the session token on the remote side. The local
// copy, in memory and in the store, deliberately stays in place: the
// next authenticated call presents the dead token and fails instead of
// transparently re-authenticating. Login is the explicit recovery path.
func (c *Client) Logout(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client:Logout")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"method": "logout",
			"token":  c.token,
		}).
		Get("")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "logout request failed")
		return fmt.Errorf("logout: %w", err)
	}
	if !res.IsSuccess() {
		err := apiError("logout", res)
		span.RecordError(err)
		span.SetStatus(codes.Error, "logout rejected")
		return err
	}
	return nil
}
