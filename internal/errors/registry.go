package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Configuration (E100-E199)

	"E100": {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Detail:     "The configuration file passed with --config does not exist.",
		Suggestion: "Run without --config to use the defaults, or create dailycontents.yaml",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be parsed.",
	},
	"E102": {
		Category:   CategoryConfig,
		Message:    "Unsupported configuration format",
		Detail:     "Configuration files must end in .json, .yaml or .yml.",
		Suggestion: "Rename the file to dailycontents.yaml",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},

	// Export (E200-E299)

	"E200": {
		Category: CategoryExport,
		Message:  "Page render failed",
		Detail:   "A registered page could not be rendered to HTML.",
	},
	"E201": {
		Category:   CategoryExport,
		Message:    "Export write failed",
		Detail:     "The rendered document could not be written to the export store.",
		Suggestion: "Check that the output directory is writable",
	},
	"E202": {
		Category:   CategoryExport,
		Message:    "S3 upload failed",
		Detail:     "The rendered document could not be uploaded to the bucket.",
		Suggestion: "Check AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and the bucket region",
	},
	"E203": {
		Category:   CategoryExport,
		Message:    "No export target",
		Detail:     "Neither an output directory nor a bucket is configured.",
		Suggestion: "Set export.dir or export.bucket",
	},
	"E204": {
		Category:   CategoryExport,
		Message:    "Unknown page",
		Detail:     "No page is registered at the requested path.",
		Suggestion: "Registered paths are / and /users",
	},

	// Server (E300-E399)

	"E300": {
		Category:   CategoryServer,
		Message:    "Server failed to start",
		Suggestion: "Check that the address is not already in use",
	},
	"E301": {
		Category: CategoryServer,
		Message:  "Server shutdown failed",
		Detail:   "Open connections did not drain before the shutdown deadline.",
	},
	"E302": {
		Category: CategoryServer,
		Message:  "Unknown page",
		Detail:   "No page is registered for the requested path.",
	},

	// CLI (E400-E499)

	"E400": {
		Category: CategoryCLI,
		Message:  "Invalid arguments",
	},
	"E401": {
		Category: CategoryCLI,
		Message:  "Output write failed",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
