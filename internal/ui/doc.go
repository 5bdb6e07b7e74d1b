// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI is the delete form of the editor:
//  1. [PickerView] : Browse playlists and schedules, toggling entries to delete
//  2. [ConfirmView] : Confirm the cascade delete
//  3. [ResultView] : Show what was removed, or why the delete failed
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Separator rows ("Playlists", "Schedules") are shown but can never be toggled.
//
// Keyboard navigation uses vim-style bindings (j/k, space, enter, esc, y/n, v, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
