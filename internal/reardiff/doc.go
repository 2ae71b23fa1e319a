// Package reardiff is the HTTP client for the rear-diff media/ML API.
//
// The API owns all persistence and business logic; this package only reads
// listings and requests field-level updates. Responses are treated as
// dynamically shaped records (Record) rather than fixed schemas, since the
// server is free to add or drop fields between releases and the dashboard
// derives its columns from whatever comes back.
//
// Every request is a single attempt with the configured timeout. Failures
// map to one of three typed errors:
//
//   - *ConnectivityError: the request never produced an HTTP response
//     (connection refused, DNS, timeout)
//   - *APIError: a non-2xx status, carrying the status code and body
//   - *InvalidIDError: a training mutation was requested with a malformed
//     title identifier; the request is never sent
package reardiff
