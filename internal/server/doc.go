// Package server hosts the Fiber HTTP service, the request middleware chain and
// the site registry that maps Host headers onto configured sites. Page
// resolution and redirect decisions live in other packages and are injected
// through PageHandler, so keep exports narrow and accept explicit dependencies.
package server
