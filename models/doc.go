// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Lottery: name, icon, digit count, cost per fraction, draw times
  - SpecialPlay: cross-lottery wager with its own digits and cost
  - Sale: one or more draws, ticket lines, total cost, sale time
  - Ticket: ticket number, fractions, cost
  - WinningResult: prize numbers for a (date, lottery, draw time)
  - Winner: a ticket matched against a result, with paid state
  - AppCustomization: app name and logo

Money fields use decimal.Decimal and serialize as JSON strings.

# Icons

Icon is a closed set of built-in identifiers plus custom image data:

	kind, value := models.ResolveIcon(lottery.Icon)

Unknown identifiers resolve to DefaultIcon.

# Request Types

  - LotteryRequest, SpecialPlayRequest: catalog payloads
  - CreateSaleRequest: draws, tickets, customer info
  - AddResultRequest, UpdateResultRequest: prize numbers

# Response Types

  - Verification: redacted public view of a sale
  - SaleDetail: full sale for staff
  - WinnerView: winner joined with its sale and lottery
  - RecordSaleResponse: message, sale_id
  - ErrorResponse: error, message

# Constants

Roles:

	RoleAdmin  = "admin"
	RoleSeller = "seller"
*/
package models
