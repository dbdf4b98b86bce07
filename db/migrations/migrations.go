// Package migrations embeds the goose SQL migrations so binaries can
// apply them at startup without carrying the source tree around.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
