// Package errors provides structured, coded errors for the recipes server
// and CLI.
//
// Every error has a code (e.g. "E201") registered with a category, a short
// message and a longer explanation. Callers add a suggestion and wrap the
// underlying cause:
//
//	err := errors.New("E104").
//	    WithSuggestion("Set EDAMAM_APP_ID and EDAMAM_APP_KEY").
//	    Wrap(cause)
//
//	errors.PrintError(err)
//	// ERROR E104: Missing Edamam credentials
//	//
//	//   The search API needs an application id and key.
//	//
//	//   Hint: Set EDAMAM_APP_ID and EDAMAM_APP_KEY
//
// # Categories
//
//   - config: recipes.json and environment problems
//   - upstream: failures talking to the recipe search API
//   - protocol: malformed or unexpected websocket frames
//   - cli: bad command-line input
package errors
