package renderer

import "embed"

// templates holds the markdown templates the render functions assemble.
//
//go:embed *.md
var templates embed.FS
