//go:build !release

package main

import (
	"io/fs"
	"os"
)

// assetMode is logged at startup.
const assetMode = "filesystem"

// loadAssets serves templates and static files live from the working
// directory so edits show up on restart without rebuilding.
func loadAssets() (templates fs.FS, static fs.FS, err error) {
	return os.DirFS("templates"), os.DirFS("static"), nil
}
