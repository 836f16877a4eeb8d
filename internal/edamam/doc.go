// Package edamam is the network side of a search: an HTTP client for the
// Edamam recipe search API and Load, which runs a fetch against a
// container's dispatch facade.
//
// The client maps API responses onto recipes.List so results can be
// dispatched with Dispatch.List.Set unchanged. Failures are internal/errors
// codes: E201 when the request cannot be made, E202 for a non-2xx status,
// E203 for an undecodable body and E204 for an unknown recipe id.
package edamam
