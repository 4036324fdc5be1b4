package football_api_client

import (
	"github.com/mcdev12/matchday/go/clients"
)

type FootballApiClient struct {
	*clients.BaseClient
}

func NewFootballApiClient(apiKey string) *FootballApiClient {
	return NewFootballApiClientWithURL(BaseURL, apiKey)
}

// NewFootballApiClientWithURL points the client at an API-Football compatible host.
func NewFootballApiClientWithURL(baseURL, apiKey string) *FootballApiClient {
	client := &FootballApiClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}

	client.SetHeader(APIKeyHeader, apiKey)

	return client
}
