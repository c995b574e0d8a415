package rangeslider

import (
	"embed"
	"io/fs"
)

//go:embed assets/*.js
var embeddedClientAssets embed.FS

// ClientAssetsFS exposes the browser glue that mounts noUiSlider on the
// rendered markup and relays update events over the session websocket.
//
// Typical mount:
//
//	router.Handle("/assets/*",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(rangeslider.ClientAssetsFS()),
//	  ),
//	)
func ClientAssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedClientAssets, "assets")
	if err != nil {
		return embeddedClientAssets
	}
	return sub
}
