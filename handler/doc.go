// Package handler turns typed handler functions into http.HandlerFunc values.
//
// A handler receives a Context and a request struct that was filled by one or
// more binders, and returns a Response that renders itself:
//
//	type renameRequest struct {
//		Name string `path:"name"`
//		Note string `json:"note"`
//	}
//
//	func rename(ctx handler.Context, req renameRequest) handler.Response {
//		if req.Note == "" {
//			return handler.JSONError(handler.ErrBadRequest)
//		}
//		return handler.JSON(req)
//	}
//
//	r.Patch("/accounts/{name}/note", handler.Wrap(rename,
//		handler.WithBinders[handler.Context, renameRequest](
//			binder.Path(chi.URLParam),
//			binder.BindJSON(),
//		),
//	))
//
// Binding and rendering failures go to the ErrorHandler, which by default
// writes a JSON error body whose status comes from HTTPError when the error
// wraps one.
package handler
