// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Lotto Hub API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, cfg)

# Endpoints

Health:

	GET /health

Verification:

	GET  /verify?id=    - Public view of a sale
	POST /verify/sales  - Record a sale made elsewhere (seller, admin)

Catalog (reads are public, writes need admin):

	GET    /lotteries           - List lotteries
	GET    /lotteries/{id}      - Get lottery
	POST   /lotteries           - Create lottery
	PUT    /lotteries/{id}      - Replace lottery
	DELETE /lotteries/{id}      - Delete lottery

The same five routes exist under /special-plays.

Sales (seller, admin):

	POST /sales                               - Sell tickets
	GET  /sales?lottery_id=&draw_time=        - Sales of a draw
	GET  /sales/{id}                          - Sale detail
	GET  /sales/{id}/receipt                  - Printable receipt

Results (reads are public, writes need admin):

	GET    /results?date=                                - Registered prizes
	POST   /results                                      - Register today's prizes
	PUT    /results/{date}/{lottery_id}/{draw_time}      - Correct prizes
	DELETE /results/{date}/{lottery_id}/{draw_time}      - Remove a result

Winners:

	GET  /winners?date=&lottery_id=&draw_time=&paid=  - List (seller, admin)
	POST /winners/{id}/pay                            - Mark paid (admin)

Customization:

	GET /customization  - App name and logo
	PUT /customization  - Change them (admin)

# Authorization

Protected routes are wrapped with middleware.RequireRole using the
configured token secret. Tokens are minted by the "token" subcommand.
*/
package router
