//go:build release

package main

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed all:templates
var embedTemplatesFS embed.FS

//go:embed all:static
var embedStaticFS embed.FS

const assetMode = "embedded"

func loadAssets() (templates fs.FS, static fs.FS, err error) {
	templates, err = fs.Sub(embedTemplatesFS, "templates")
	if err != nil {
		return nil, nil, fmt.Errorf("sub filesystem for embedded templates: %w", err)
	}
	static, err = fs.Sub(embedStaticFS, "static")
	if err != nil {
		return nil, nil, fmt.Errorf("sub filesystem for embedded static files: %w", err)
	}
	return templates, static, nil
}
