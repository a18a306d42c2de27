// Package export renders the trails recorded by turtles.
//
// Only SVG is supported. Every segment keeps the pen color, width and
// opacity it was drawn with; turtles can optionally be drawn as small
// triangles pointing along their heading.
package export
