// Package language is the localization facade of GeoTortue: active DSL and
// UI languages, canonical word resolution for the token refiner, color
// names, and script translation between DSL languages.
package language
