// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the relational database and creates its schema.

# Connecting

	conn, err := db.Open(db.TypePostgres, "postgres://...")
	conn, err := db.Open(db.TypeSQLite, "file:lottohub.db")

SQLite uses modernc.org/sqlite (pure Go) and is limited to one open
connection. PostgreSQL uses lib/pq.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS.

# Tables

  - collection: one JSON document per application collection
    (sales, winningResults, winners, lotteries, specialPlays,
    appCustomization), keyed by name

The store package reads and writes this table; saving several collections
happens in one transaction.
*/
package db
