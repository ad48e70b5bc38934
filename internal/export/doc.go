// Package export renders every registered page to a complete HTML document
// and writes it to a Store: a local directory or an S3 bucket.
//
// Exported documents are static. They carry no live client, so buttons
// with callbacks render but do nothing in the browser.
//
// Page paths map to keys with clean URLs:
//
//	/       → index.html
//	/users  → users/index.html
package export
