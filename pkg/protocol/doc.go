// Package protocol defines the JSON messages exchanged between the browser
// and a recipes session over a WebSocket.
//
// # Client → Server
//
// The browser sends one dispatch per message:
//
//	{"op": "params.update", "payload": {"mealType": "Dinner", "diet": null}}
//
// Ops mirror the dispatch facade: loading, error and id for the status
// slice; params.set, params.update and params.clear; list.set, list.update
// and list.clear. Two more ops ask the session to talk to the search API:
// search (optionally with a params.update payload first) and next.
//
// Params payloads are query-shaped: each key maps to a string, a list of
// strings, a number or a bool. In params.update a null value removes the
// key.
//
// # Server → Client
//
// Every server message is a Frame with a sequence number:
//
//	{"type": "state", "seq": 4, "data": {"loading": false, ...}}
//	{"type": "url",   "seq": 5, "data": {"mode": "replace", "query": "diet=balanced"}}
//	{"type": "error", "seq": 6, "data": {"code": "E302", "message": "..."}}
//
// State frames carry the whole snapshot. URL frames carry the complete
// query string to install in the address bar.
package protocol
