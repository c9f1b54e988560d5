// Package gamedata provides the embedded tile and tool tables and utilities for loading them.
package gamedata

import "embed"

// dataFS embeds all JSON data and schema files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
