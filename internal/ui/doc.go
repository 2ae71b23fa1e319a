// Package ui is the Bubble Tea front end for the dashboard. One Model holds
// a pane per view (training, predictions, media, migrations); panes own
// their query parameters and fetched rows, while modal state — search
// input, status picker, confirm prompt — lives on the Model because only
// one can be active at a time.
//
// All network work runs inside tea.Cmd closures; Update applies results and
// never blocks. Listings load through the session cache, and a mutation
// invalidates the affected endpoint prefixes only after it succeeds, so a
// failed write leaves both the screen and the cache as they were.
package ui
