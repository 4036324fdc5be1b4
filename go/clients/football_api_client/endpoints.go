package football_api_client

const (
	// Base URL
	BaseURL = "https://v3.football.api-sports.io"

	// API Endpoints
	FixturesEndpoint = "/fixtures"

	// Headers
	APIKeyHeader = "x-apisports-key"
)
