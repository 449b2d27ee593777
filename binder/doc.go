// Package binder fills request structs from the parts of an HTTP request.
//
// Every binder handles one source and one struct tag:
//
//	JSON()       request body, `json` tags (application/json)
//	Path(fn)     route parameters, `path` tags
//	Text()       raw body, the field tagged `body:"text"` (text/plain)
//	File()       multipart uploads, []byte fields tagged `file:"name"`
//
// Text and File return ErrBinderNotApplicable when the request has another
// content type, so both can be listed for the same handler.
package binder
