package db

import _ "embed"

// Schema creates the fixtures table if it does not exist.
//
//go:embed schema.sql
var Schema string
