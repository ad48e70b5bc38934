// Package errors provides structured, actionable errors for the
// dailycontents tooling.
//
// Components never fail, so these errors only come from the infrastructure
// around them: configuration loading, export, the HTTP host and the CLI.
//
// # Error Codes
//
// Each error has a code that maps to a registered template:
//   - E1xx: configuration
//   - E2xx: export
//   - E3xx: server
//   - E4xx: CLI
//
// # Usage
//
//	err := errors.New("E101").
//	    WithDetail("dailycontents.yaml: line 3: mapping values are not allowed").
//	    WithSuggestion("Check the YAML indentation")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E101: Invalid configuration file
//	//
//	//   dailycontents.yaml: line 3: mapping values are not allowed
//	//
//	//   Hint: Check the YAML indentation
package errors
