// Package admin holds the view state of the two administrator screens: the
// sign-in/first-admin screen and the homepage settings editor.
//
// Each screen is a plain struct populated by Init/Load and changed only
// through its named operations. Persistence is reached through small
// interfaces so the screens run unchanged against gorm repositories or
// in-memory fakes. The HTTP layer builds a screen per request, applies one
// operation and renders the resulting state.
package admin
