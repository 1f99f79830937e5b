package msgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

var requiredScopes = []string{
	"https://graph.microsoft.com/Calendars.Read",
	"offline_access",
}

func msEndpoint(tenantID, path string) string {
	return "https://login.microsoftonline.com/" + tenantID + "/oauth2/v2.0/" + path
}

// TokenPath returns where the Graph token is cached inside the data directory.
func TokenPath(base string) string {
	return filepath.Join(base, "auth", "msgraph_tokens.json")
}

// oauth2Config returns the oauth2.Config for Microsoft Graph using the
// provided tenant and client IDs.
func oauth2Config(tenantID, clientID string) *oauth2.Config {
	return &oauth2.Config{
		ClientID: clientID,
		Scopes:   requiredScopes,
		Endpoint: oauth2.Endpoint{
			DeviceAuthURL: msEndpoint(tenantID, "devicecode"),
			TokenURL:      msEndpoint(tenantID, "token"),
			AuthStyle:     oauth2.AuthStyleInParams,
		},
	}
}

// loadToken reads a cached token. A missing file yields (nil, nil).
func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("corrupt token file (delete %s to re-authenticate): %w", path, err)
	}
	return &tok, nil
}

// saveToken persists tok at path with a temp file and rename.
func saveToken(path string, tok *oauth2.Token) error {
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling token: %w", err)
	}
	return writeFileAtomic(path, data)
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// Auth locates the token cache and the Azure app used for sign-in.
type Auth struct {
	TenantID  string
	ClientID  string
	TokenPath string
	// Prompt receives the device-code sign-in instructions.
	Prompt io.Writer
	Log    *zap.Logger
}

// HTTPClient returns an HTTP client authorised for Microsoft Graph. It
// reuses the cached token, refreshes it when expired, or runs the device
// code flow when neither works. Refreshed tokens are written back to the
// cache.
func (a Auth) HTTPClient(ctx context.Context) (*http.Client, error) {
	log := a.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("msgraph")
	prompt := a.Prompt
	if prompt == nil {
		prompt = os.Stderr
	}
	cfg := oauth2Config(a.TenantID, a.ClientID)

	tok, err := loadToken(a.TokenPath)
	if err != nil {
		log.Warn("ignoring cached token", zap.Error(err))
		tok = nil
	}

	if tok == nil || (!tok.Valid() && tok.RefreshToken == "") {
		tok, err = a.deviceLogin(ctx, cfg, prompt, log)
		if err != nil {
			return nil, err
		}
	} else if !tok.Valid() {
		refreshed, err := cfg.TokenSource(ctx, tok).Token()
		if err != nil {
			log.Info("token refresh failed, re-authenticating", zap.Error(err))
			if refreshed, err = a.deviceLogin(ctx, cfg, prompt, log); err != nil {
				return nil, err
			}
		}
		tok = refreshed
		if err := saveToken(a.TokenPath, tok); err != nil {
			log.Warn("could not save refreshed token", zap.Error(err))
		}
	}

	ts := &savingTokenSource{
		ts:   cfg.TokenSource(ctx, tok),
		path: a.TokenPath,
		last: tok.AccessToken,
		log:  log,
	}
	return oauth2.NewClient(ctx, ts), nil
}

func (a Auth) deviceLogin(ctx context.Context, cfg *oauth2.Config, prompt io.Writer, log *zap.Logger) (*oauth2.Token, error) {
	resp, err := cfg.DeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("device auth request failed: %w", err)
	}

	fmt.Fprintln(prompt)
	fmt.Fprintln(prompt, "To sign in, use a web browser to open the page:")
	fmt.Fprintf(prompt, "  %s\n", resp.VerificationURI)
	fmt.Fprintf(prompt, "Enter the code: %s\n", resp.UserCode)
	fmt.Fprintln(prompt)

	tok, err := cfg.DeviceAccessToken(ctx, resp)
	if err != nil {
		return nil, fmt.Errorf("device authentication failed: %w", err)
	}
	if err := saveToken(a.TokenPath, tok); err != nil {
		log.Warn("could not save token", zap.Error(err))
	}
	return tok, nil
}

// savingTokenSource persists tokens the underlying source refreshes during
// a long sync.
type savingTokenSource struct {
	ts   oauth2.TokenSource
	path string
	last string
	log  *zap.Logger
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.ts.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != s.last {
		s.last = tok.AccessToken
		if err := saveToken(s.path, tok); err != nil {
			s.log.Warn("could not save refreshed token", zap.Error(err))
		}
	}
	return tok, nil
}
