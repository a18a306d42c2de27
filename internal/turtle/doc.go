// Package turtle holds the turtle entity, its pen and trail, and the
// repository that owns every turtle of a session.
//
// Recorded segments are immutable: pen changes only affect segments drawn
// afterwards. Reset keeps trails; ClearLines keeps state.
package turtle
