// Package web holds the bundled browser client.
package web

import "embed"

//go:embed index.html scripts.js
var Files embed.FS
