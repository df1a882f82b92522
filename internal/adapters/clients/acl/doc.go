// Package acl is the anti-corruption layer between upstream HTTP APIs and
// the domain.
//
// Upstream payloads are decoded into unexported DTOs, validated, and only
// then translated into domain types. Every failure on the way, whether a
// transport error, a non-2xx status, a malformed body, or a record missing a
// required field, surfaces as a [domain.UnavailableError] so callers only
// deal with one upstream failure kind.
//
// Components:
//
//   - [QuoteClient]: implements ports.QuoteClient against the quotable API
//   - [MapHTTPError]: status and transport error to domain error mapping
//   - [ParseErrorResponse]: best-effort parsing of upstream error bodies
//   - [DecodeResponse]: generic JSON decoder with struct validation
//   - [TranslateSlice]: batch translation helper
package acl
