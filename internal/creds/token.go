// Where: internal/creds/token.go
// What: Short-lived access token minting.
// Why: Replace the batch scripts' `gcloud auth print-access-token` step.
package creds

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2/google"
)

// LoginHint is appended to minting failures so the operator knows how to
// restore a cloud session.
const LoginHint = "run `gcloud auth application-default login` and retry"

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// Token is a freshly minted access token. Validity is minutes, tied to the
// issuing identity provider; it must be minted immediately before use and
// never cached across invocations.
type Token struct {
	Value  string
	Expiry time.Time
}

// Minter mints access tokens for a credential resolution.
type Minter interface {
	Mint(ctx context.Context, res Resolution) (Token, error)
}

type adcMinter struct{}

// NewMinter returns a Minter backed by Google application default credentials.
func NewMinter() Minter {
	return adcMinter{}
}

func (adcMinter) Mint(ctx context.Context, res Resolution) (Token, error) {
	credentials, err := findCredentials(ctx, res)
	if err != nil {
		return Token{}, fmt.Errorf("locate cloud credentials: %w; %s", err, LoginHint)
	}

	tok, err := credentials.TokenSource.Token()
	if err != nil {
		return Token{}, fmt.Errorf("mint access token: %w; %s", err, LoginHint)
	}
	if tok.AccessToken == "" {
		return Token{}, fmt.Errorf("identity provider returned an empty access token; %s", LoginHint)
	}
	return Token{Value: tok.AccessToken, Expiry: tok.Expiry}, nil
}

func findCredentials(ctx context.Context, res Resolution) (*google.Credentials, error) {
	if res.Exists {
		payload, err := os.ReadFile(res.Path)
		if err != nil {
			return nil, err
		}
		return google.CredentialsFromJSON(ctx, payload, cloudPlatformScope)
	}
	return google.FindDefaultCredentials(ctx, cloudPlatformScope)
}

// Mask renders a token for display without leaking it.
func Mask(token string) string {
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "…" + token[len(token)-4:]
}
