// Package cache provides a small generic LRU cache.
//
// It backs the compiled expression cache of the math evaluator.
package cache
