//go:build !web

package app

const isWebBuild = false
