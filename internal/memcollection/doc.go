// Package memcollection implements an in-memory book collection that speaks
// the same REST shape as the hosted endpoint the client targets.
//
// Documents are keyed by a server-assigned "_id" (a UUID), listed in
// insertion order, and replaced wholesale on PUT. Like hosted document
// stores, PUT and DELETE answer 200 with an empty body, so callers must not
// rely on the response to learn the identifier.
//
// The handler echoes the X-Request-Id header, assigning one when the caller
// did not, and logs one line per request with the standard logger. It backs
// the shelfd development server and the end-to-end tests of the client and
// presenter.
package memcollection
