package assets

import "embed"

// FS is the embedded filesystem for the assets directory.
//
//go:embed all:css
var FS embed.FS
