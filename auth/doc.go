// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides bearer credentials and id generation.

# Bearer Tokens

Tokens carry a uid, a role (admin or seller) and an expiry, signed with
HMAC-SHA256:

	token, err := auth.IssueToken("alice", models.RoleSeller, 24*time.Hour, secret, time.Now())
	claims, err := auth.ParseToken(token, secret, time.Now())

Both parts are URL-safe base64 without padding. ParseToken returns
ErrMissingToken, ErrInvalidToken or ErrTokenExpired. Tokens are minted by
the "lotto-hub token" subcommand; there is no login endpoint.

# ID Generation

Sales, tickets and catalog entries use time-ordered UUIDv7 ids:

	id, err := auth.NewID()
*/
package auth
