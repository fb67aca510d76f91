// Package dom is the DOM query and mutation facility the field engine runs
// on. It wraps goquery with the handful of browser behaviours a rendered list
// form relies on: control values, checked and selected state, inline
// visibility, and synchronous event delivery for change and click handlers.
package dom
