// Package http implements the HTTP transport layer of the application.
//
// It builds the blog's route table, serves it through a navigation
// controller, and renders the views from embedded HTML templates. Request
// tracing, access logging, sessions, metrics and the version endpoint are
// wired here before requests reach the service layer.
package http
