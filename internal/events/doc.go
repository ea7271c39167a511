// Package events carries user-visible notifications from feature
// controllers to whoever renders or records them. Controllers emit one
// notice per terminal transition; handlers fan out without knowing
// about each other.
package events
