// Package style renders coffle's terminal output: outcome lines, the status
// table and color detection.
package style
