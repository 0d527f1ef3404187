// Marquee - Movie Rating REST Backend
// Copyright 2026 Marquee Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/marqueeapp/marquee

/*
Package api provides the HTTP surface of the application: the chi router,
the handlers behind every route, and the response envelope helpers.

# Response Envelope

Every response body is a JSON object carrying exactly one of a "message"
key (expected outcomes, validation failures) or an "error" key (internal
failures, credential failures). The messages routes are the one documented
exception: they return message documents raw, matching the API's published
contract.

Status codes form a closed enumeration: 200, 400, 401, 404, 409, 500.
Store failures are logged with their cause and surface only as a generic
envelope; internal detail never reaches a client.

# Route Groups

  - Public: /api/health, /metrics, /users/register, /users/login
  - Protected (bearer token or session cookie): /profile, /movies,
    /ratings, /comments, /messages

Authentication is channel-agnostic for every protected route except
POST /messages, which requires the session channel specifically.
*/
package api
