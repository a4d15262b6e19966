// Package pipeline assembles DataFrames and Sinks into a directed acyclic graph of
// tasks. Read tasks produce DataFrames, transform and merge tasks extend them, and write
// tasks execute the resulting DataFrame and hand its Table to a Sink.
package pipeline
