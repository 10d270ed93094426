// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for movie discovery:
//  1. [BrowseView] : Scroll the popular or search listing; nearing the end of the list triggers the next page fetch
//  2. [SearchView] : Type a query with debounced suggestion lookups; enter commits the query to the browse view
//  3. [DetailView] : Full record for one movie (genres, runtime, overview)
//  4. [FavoritesView] : The signed-in user's favorites list
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Page fetches run as commands against the feed controller, whose loading
// guard makes repeated scroll triggers no-ops; suggestion lookups flow
// through a channel armed once per received message, so only the most recent
// debounced query is ever fetched.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, /, f, v, q)
// with contextual help displayed via charmbracelet/bubbles/help.
package ui
