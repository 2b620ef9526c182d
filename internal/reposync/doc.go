// Package reposync keeps the local working copy of the compliance repository
// cloned, checked out on the requested branch, and fast-forwarded to the
// remote tip.
package reposync
