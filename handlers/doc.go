// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Lotto Hub API.

# Handler Types

Each handler is a struct with hub and config dependencies:

  - CatalogHandler: Lotteries and special plays
  - SalesHandler: Ticket sales, sale detail and receipts
  - VerifyHandler: Public verification and recording of external sales
  - ResultsHandler: Winning numbers per draw
  - WinnersHandler: Winner listing and payouts
  - CustomizationHandler: App name and logo

Handlers are created via constructor functions that accept *hub.Service
and Config:

	salesHandler := handlers.NewSalesHandler(svc, cfg)

# Errors

Hub errors map onto statuses in one place (writeServiceError):

	*hub.ValidationError -> 400
	hub.ErrNotFound      -> 404
	hub.ErrConflict      -> 409
	anything else        -> 500 "Storage error"

Bodies that are not valid JSON get 400 "Invalid JSON".

# Results and Winners

Registering or correcting a result resolves winners against the sales of
that draw and date in the same write:

	POST /results                                  -> AddResult
	PUT  /results/{date}/{lottery_id}/{draw_time}  -> UpdateResult

Winners that were already paid keep their payment when a correction still
matches them. Paying twice answers 409.

# Receipts

RenderReceipt prints a fixed-width text receipt with amounts grouped by
thousands and the sale age in words.
*/
package handlers
