// Package web serves the sitemap over HTTP.
//
// Each request is routed through the MatchService. A matching read route
// serves the target file from the document root; a redirect route answers
// with the route's redirect status. Unmatched requests get 404.
//
// The server tags every response with an X-Request-ID, optionally throttles
// requests with a token bucket, and can reload the sitemap file when it
// changes on disk.
package web
