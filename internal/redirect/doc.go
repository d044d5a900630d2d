// Package redirect decides, once per request and after page resolution, whether
// the frontend must answer with a redirect instead of rendering the page.
//
// The decision runs three checks in strict order: shortcut/mount point targets
// reported by a TargetResolver, external URL pages, then passthrough. The
// package owns no state; a Resolver may be shared by all requests.
package redirect
