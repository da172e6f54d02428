// Package tui renders a scroll feed as an interactive terminal list.
//
// The model owns no pagination logic. It lays out the feed's records one per row,
// reports the resulting geometry to a viewport.Observer, and re-renders whenever the
// feed publishes a new state. Loading more records is left to a viewport.Trigger
// running next to the program, so scrolling near the end of the list pages in the
// next chunk exactly as an intersection observer would in a browser.
//
// Key bindings:
//
//	j/k, ↑/↓, pgup/pgdn, g/G   scroll
//	r                          refresh (prepend new records)
//	R                          hard reload (replace with page 1)
//	l                          load more now (also retries after an error)
//	a                          toggle auto-refresh
//	x                          reset to the initial page
//	n                          insert new records at the corpus head
//	q, ctrl+c                  quit
package tui
