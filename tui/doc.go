// Package tui renders recipes in the terminal: a static list view and an
// interactive bubbletea form driving an editor.Editor.
package tui
