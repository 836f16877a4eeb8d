package errors

// Template defines a registered error.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Configuration Errors (E100-E199)
	// ============================================

	"E101": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No recipes.json was found in the current directory or any parent directory.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "recipes.json could not be parsed as JSON.",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid port",
		Detail:   "The server port must be between 1 and 65535.",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Missing Edamam credentials",
		Detail:   "The search API needs an application id and key.",
	},
	"E105": {
		Category: CategoryConfig,
		Message:  "Invalid request timeout",
		Detail:   "edamam.timeout must be a positive duration such as \"10s\".",
	},
	"E106": {
		Category: CategoryConfig,
		Message:  "Invalid Edamam base URL",
		Detail:   "edamam.baseUrl must be an absolute http or https URL.",
	},
	"E107": {
		Category: CategoryConfig,
		Message:  "Config file already exists",
	},

	// ============================================
	// Upstream Errors (E200-E299)
	// ============================================

	"E201": {
		Category: CategoryUpstream,
		Message:  "Recipe search request failed",
		Detail:   "The request to the recipe search API could not be completed.",
	},
	"E202": {
		Category: CategoryUpstream,
		Message:  "Recipe search returned an error status",
		Detail:   "The recipe search API answered with a non-2xx status.",
	},
	"E203": {
		Category: CategoryUpstream,
		Message:  "Recipe search response could not be decoded",
		Detail:   "The response body was not the expected JSON document.",
	},
	"E204": {
		Category: CategoryUpstream,
		Message:  "Recipe not found",
		Detail:   "No recipe exists with the requested id.",
	},

	// ============================================
	// Protocol Errors (E300-E399)
	// ============================================

	"E301": {
		Category: CategoryProtocol,
		Message:  "Malformed frame",
		Detail:   "A websocket frame was not a valid JSON dispatch message.",
	},
	"E302": {
		Category: CategoryProtocol,
		Message:  "Unknown dispatch op",
		Detail:   "The dispatch op is not one of the supported operations.",
	},
	"E303": {
		Category: CategoryProtocol,
		Message:  "Invalid dispatch payload",
		Detail:   "The payload does not have the shape the op requires.",
	},
	"E304": {
		Category: CategoryProtocol,
		Message:  "Session closed",
		Detail:   "The session has ended and no longer accepts dispatches.",
	},

	// ============================================
	// CLI Errors (E400-E499)
	// ============================================

	"E401": {
		Category: CategoryCLI,
		Message:  "Invalid flag value",
	},
	"E402": {
		Category: CategoryCLI,
		Message:  "Server failed",
		Detail:   "The HTTP server stopped with an error.",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds or replaces a template. It is meant for package init.
func Register(code string, t Template) {
	registry[code] = t
}
