package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// SPAHandler serves the built front end from dir. Paths that are not files
// get index.html so client-side routes survive a reload.
func SPAHandler(dir string) gin.HandlerFunc {
	if dir == "" {
		dir = "dist"
	}
	index := filepath.Join(dir, "index.html")

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.String(http.StatusNotFound, msgNotFound)
			return
		}

		// Clean against "/" so the result can never climb out of dir
		name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+c.Request.URL.Path)))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			c.File(name)
			return
		}

		if _, err := os.Stat(index); err != nil {
			c.String(http.StatusNotFound, msgNotFound)
			return
		}
		c.File(index)
	}
}
