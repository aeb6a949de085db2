// Package migrations embeds the job board schema.
package migrations

import "embed"

// FS contains all migration SQL files.
//
//go:embed *.sql
var FS embed.FS
