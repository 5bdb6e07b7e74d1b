// Package models defines the Telefyna configuration document edited by tfx.
//
// The whole persisted state is one [ConfigDocument]:
//   - global player settings (name, version, wait, automation and notification switches, alerts)
//   - [Playlist] records, identified by their trimmed name, in display/priority order
//   - [Schedule] records, each referencing one playlist by name and identified by (name, start, schedule)
//
// JSON field names and enum strings are consumed by the external player and must not change.
//
// Defaults for new records live in defaults.go; [DefaultPlaylist] and [DefaultSchedule] initialize forms.
// Decoding tolerates a missing or malformed playlists/schedules sequence and treats it as empty.
package models
