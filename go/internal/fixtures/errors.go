package fixtures

import "errors"

var (
	ErrFixtureNotFound = errors.New("fixture not found")
	ErrInvalidFixture  = errors.New("invalid fixture")
)
