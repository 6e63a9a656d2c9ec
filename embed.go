// Package compound carries embedded assets shared by the binaries.
package compound

import "embed"

// MigrationsFS holds the versioned SQL schema migrations.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
