// Package registry persists the known sessions as a YAML document under
// the data directory. Every mutation rewrites the file, so the record
// survives process restarts; the session layer reconciles the stored
// lifecycle state against the live engine on read.
package registry
