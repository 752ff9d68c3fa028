// Package logging provides a tiny abstraction over slog so payrouter
// components can depend on a minimal interface (Logger) while allowing users
// to plug any structured logger.
package logging
