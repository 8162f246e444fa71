// Package ui is the Bubble Tea front end of productdesk.
//
// Core pieces:
//   - AppModel: the view controller; holds productview.State and turns its
//     reducers' Effects into commands
//   - View: a screen or modal with its own init, update, view (Elm-style)
//   - ProductListView / ProductDetailView: the list screen and the search result screen
//   - Overlay: modal views (add form, search prompt, delete confirmation, notice)
//   - KeyHandler: single keys plus spacemacs-style SPC leader sequences
//   - FocusManager: tab order inside the add form
package ui
