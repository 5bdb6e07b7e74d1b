// Package server exposes the editor over a local HTTP endpoint set for browser forms.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns ("GET /config.json").
//
// # Endpoints
//
// [API] implements [Handler] and serves:
//   - GET /config.json: the document as an attachment named config.json
//   - POST /config.json: wholesale import of an application/json body
//   - GET /options/{kind}: playlist, schedule or picker options (?verbose=&active=)
//   - POST /playlists, PUT /playlists/{name}: create and update playlists
//   - POST /schedules, DELETE /schedules: save one schedule, or remove them all
//   - POST /delete: cascade delete of the selected picker options ({kind, value})
//   - PUT /settings: autosave of the onboarding form
//
// Errors are JSON objects with an "error" message; validation failures add "fields".
// Parse and validation errors are 400, unknown records 404, duplicate names 409 and
// unsupported upload types 415.
package server
