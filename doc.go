// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Lotto Hub API server.

Lotto Hub runs the counter of a lottery shop: a catalog of lotteries and
special plays, the ticket sales ledger, the daily register of winning
numbers, the winners those numbers produce, and a public lookup that
lets a customer check a sale by its code.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	TOKEN_SECRET=... go run .

Or with flags:

	go run . -p 3318 -s sql -t postgres -d "postgres://..." -token-secret ...

A .env file in the working directory is loaded first when present.

# Issuing Tokens

Write operations need a bearer token. Mint one with the same secret:

	TOKEN_SECRET=... go run . token -uid maria -role seller -ttl 12h

# Configuration

Required settings:

  - TOKEN_SECRET (-token-secret): Secret for signing bearer tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - STORE_TYPE (-s): file, sql, redis or memory (default: file)
  - DATA_DIR (-data): Directory for the file store (default: ./data)
  - DATABASE_URL (-d), DATABASE_TYPE (-t): SQL store (sqlite or postgres)
  - REDIS_URL (-redis): Redis store
  - APP_TIMEZONE (-tz): Zone that decides draw dates (default: Local)
  - SETTINGS_FILE (-settings): YAML tunables, reloaded on change

Tunables cover retention horizons, the sweep interval, Redis pool and
retry settings and the circuit breaker. Each can be overridden with a
LOTTOHUB_ environment variable, e.g. LOTTOHUB_RETENTION_SALES=6h.

# Architecture

  - hub: Domain service (catalog, sales, results, winners, retention)
  - resolver: Winner matching and merge rules
  - store: Persistence backends (file, SQL, Redis, memory)
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, role checks
  - models: Domain and request/response types
  - auth: Ids and bearer tokens
  - db: SQL connection and schema
  - cliparse: Flags, environment and settings

See package documentation for each component.
*/
package main
