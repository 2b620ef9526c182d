// Package catalog lists the selectable release branches of the remote
// compliance repository, classifies them by platform, and caches listings for
// the lifetime of a session.
package catalog
