//go:build web

package app

// Built with -tags web: only the web-applicable rows and actions exist.
const isWebBuild = true
