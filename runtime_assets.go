package publishing

import (
	"embed"
	"io/fs"
)

// RuntimeScript is the browser helper that hides the custom rules editor while
// custom rules are disabled. It reads the localization object the page emits.
const RuntimeScript = "publishing-settings.js"

//go:embed pkg/runtime/assets/*.js
var embeddedRuntimeAssets embed.FS

// RuntimeAssetsFS exposes the browser runtime scripts so Go applications can
// serve them without a build step.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(publishing.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedRuntimeAssets, "pkg/runtime/assets")
	if err != nil {
		return embeddedRuntimeAssets
	}
	return sub
}
