// Package editor applies form submissions to the configuration document.
//
// The package-level functions are pure: each clones its input document and returns the
// changed copy. [Editor] wraps them with validation, loading and saving through a
// [Repository]. [Session] models the create/selected/submitting cycle of one form and
// [SettingsSync] autosaves the onboarding form.
//
// Playlist updates default to [Overwrite] and schedule updates to [Fallback]; both are
// configurable through [Options].
package editor
