// Package parse turns a raw shell line into a structured pipeline.
//
// Parsing happens in three stages:
//
//   - Tokenize: split the line into quote-aware tokens
//     (single/double quotes and backslash escapes, via go-shellwords)
//   - Expand: apply home-directory and environment-variable
//     substitution to each token
//   - Parse: split the token stream on "|" into pipeline stages and
//     extract the ">", ">>" and "<" redirections per stage
//
// The package implements a pragmatic subset of shell grammar: simple
// commands, pipelines, and the three basic redirections. There are no
// subshells, no command substitution, no here-documents, and no job
// control.
package parse
