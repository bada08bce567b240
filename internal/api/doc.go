// Package api exposes the identity session through versioned JSON entry
// points. Requests and responses are JSON documents; every response names
// the entry point version that produced it so callers can check
// compatibility, and Capabilities advertises which entry points exist.
package api
