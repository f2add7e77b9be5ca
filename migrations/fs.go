package migrations

import "embed"

// FS contém os arquivos .sql de migração, aplicados em ordem alfabética.
//
//go:embed *.sql
var FS embed.FS
