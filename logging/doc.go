// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package logging builds the server's slog logger.

# Environments

Setup picks a handler by environment name:

  - local: colored, human-readable lines on a terminal (plain text
    otherwise), debug level
  - dev: JSON, debug level
  - prod: JSON, info level

The result is normally installed with slog.SetDefault so that packages can
log through the package-level slog functions:

	log := logging.Setup(cfg.Env, os.Stdout)
	slog.SetDefault(log)

# Attributes

Err turns an error into a uniform "error" attribute:

	slog.Error("schema creation failed", logging.Err(err))
*/
package logging
