package source

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// readTitle reads the ID3v2 title from an MP3 file, falling back to the
// filename without extension.
func readTitle(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
		if err == nil {
			defer tag.Close()
			if title := strings.TrimSpace(tag.Title()); title != "" {
				return title
			}
		}
	}

	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
