package spotify

import (
	"context"

	gatewayHttp "spotify-gateway/internal/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const TokenURL = "https://accounts.spotify.com/api/token"

// Token source for the client credentials flow. Tokens are cached and
// refreshed when they expire.
func ClientCredentials(ctx context.Context, clientID, clientSecret string, httpClient *gatewayHttp.Client) oauth2.TokenSource {
	return ClientCredentialsWithURL(ctx, clientID, clientSecret, TokenURL, httpClient)
}

func ClientCredentialsWithURL(ctx context.Context, clientID, clientSecret, tokenURL string, httpClient *gatewayHttp.Client) oauth2.TokenSource {
	if httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient.StandardClient())
	}
	config := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	return config.TokenSource(ctx)
}
