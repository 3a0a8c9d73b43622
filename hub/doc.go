// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package hub holds the application state of Lotto Hub and every operation
that changes it.

# State

A Service owns six collections:

	lotteries         catalog of lotteries and their draw times
	specialPlays      plays sold across several draws
	sales             append-only ledger of sold tickets
	winningResults    date -> lottery -> draw time -> prizes
	winners           resolved winners with their paid flag
	appCustomization  app name and logo

Each collection is persisted as one JSON document through a
store.Persister. Reads take a shared lock. Mutations take the exclusive
lock, build the next state, save the changed collections in a single batch
and only then publish it. A failed save returns a *StorageError and leaves
the state as it was, so a result is never visible without its winners.

# Loading

Load tolerates damaged storage: a collection that is not valid JSON is
replaced by its default (empty, or the default customization) and records
that fail validation are dropped. Both cases are logged as warnings.

# Results and winners

AddResult registers prizes under today's date in the configured time zone.
AddResult and UpdateResult both run the resolver over the sales placed on
that draw that day and merge the outcome into the winner list:

	svc.AddResult(ctx, models.AddResultRequest{
		LotteryID: lotteryID,
		DrawTime:  "02:00 PM",
		Prizes:    []string{"123456", "000000", ""},
	})

Winners already paid keep their paid flag when a draw is re-registered.
DeleteResult removes the draw's winners with it.

# Errors

	ErrNotFound        unknown id or draw
	ErrConflict        duplicate sale id, winner already paid
	*ValidationError   rejected input, with the offending field
	*StorageError      the backend refused the write

# Retention

Purge drops sales, winners and results older than the configured
horizons. RunSweeper calls it on a ticker until its context ends.
*/
package hub
