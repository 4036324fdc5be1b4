package football_api_client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mcdev12/matchday/go/internal/models"
)

// ErrFixtureNotFound is returned when the API knows no fixture with the requested id.
var ErrFixtureNotFound = errors.New("fixture not found")

type Venue struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

type Status struct {
	Long    string `json:"long"`
	Short   string `json:"short"`
	Elapsed *int   `json:"elapsed"`
}

type FixtureInfo struct {
	ID        int    `json:"id"`
	Referee   string `json:"referee"`
	Timezone  string `json:"timezone"`
	Date      string `json:"date"`
	Timestamp int64  `json:"timestamp"`
	Venue     Venue  `json:"venue"`
	Status    Status `json:"status"`
}

type League struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Season int    `json:"season"`
	Round  string `json:"round"`
}

type Team struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type Teams struct {
	Home Team `json:"home"`
	Away Team `json:"away"`
}

type Goals struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type Fixture struct {
	Fixture FixtureInfo `json:"fixture"`
	League  League      `json:"league"`
	Teams   Teams       `json:"teams"`
	Goals   Goals       `json:"goals"`
}

type FixturesResponse struct {
	Get        string                 `json:"get"`
	Parameters map[string]interface{} `json:"parameters"`
	Errors     interface{}            `json:"errors"`
	Results    int                    `json:"results"`
	Response   []Fixture              `json:"response"`
}

// statusCodes maps the API's short status codes onto the canonical vocabulary.
var statusCodes = map[string]models.MatchStatus{
	"TBD": models.StatusNotStarted,
	"NS":  models.StatusNotStarted,
	"1H":  models.StatusFirstHalf,
	"HT":  models.StatusHalfTime,
	"2H":  models.StatusSecondHalf,
	"ET":  models.StatusExtraTime,
	"BT":  models.StatusBreakTime,
	"P":   models.StatusPenalties,
	"FT":  models.StatusFullTime,
	"AET": models.StatusAfterExtraTime,
	"PEN": models.StatusPenaltiesDecided,
	"WO":  models.StatusWalkover,
}

// MapStatus converts a short status code. Unknown codes map to StatusUnknown.
func MapStatus(short string) models.MatchStatus {
	return statusCodes[short]
}

// ToModel converts an API fixture into the domain fixture.
func (f Fixture) ToModel() models.Fixture {
	return models.Fixture{
		ID:        strconv.Itoa(f.Fixture.ID),
		HomeTeam:  f.Teams.Home.Name,
		AwayTeam:  f.Teams.Away.Name,
		Venue:     f.Fixture.Venue.Name,
		League:    f.League.Name,
		Timestamp: f.Fixture.Timestamp,
		Date:      f.Fixture.Date,
		Status:    MapStatus(f.Fixture.Status.Short),
		Elapsed:   f.Fixture.Status.Elapsed,
		HomeGoals: f.Goals.Home,
		AwayGoals: f.Goals.Away,
	}
}

// GetFixture fetches a single fixture by id.
func (c *FootballApiClient) GetFixture(ctx context.Context, fixtureID string) (*models.Fixture, error) {
	endpoint := fmt.Sprintf("%s?id=%s", FixturesEndpoint, url.QueryEscape(fixtureID))
	body, err := c.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get fixture: %w", err)
	}

	var response FixturesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	if response.Errors != nil {
		if errMap, ok := response.Errors.(map[string]interface{}); ok && len(errMap) > 0 {
			return nil, fmt.Errorf("API returned errors: %v", response.Errors)
		}
	}

	if len(response.Response) == 0 {
		return nil, fmt.Errorf("fixture %s: %w", fixtureID, ErrFixtureNotFound)
	}

	fixture := response.Response[0].ToModel()
	return &fixture, nil
}
