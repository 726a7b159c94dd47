package utils

import (
	"log"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// CreateThumb writes a <id>_thumb.jpg next to the original image.
func CreateThumb(id, folder, ext string, width, height int) {
	src, err := imaging.Open(filepath.Join(folder, id+ext))
	if err != nil {
		log.Printf("CreateThumb open error for %s: %v", id, err)
		return
	}

	thumb := imaging.Fill(src, width, height, imaging.Center, imaging.Lanczos)
	dst := filepath.Join(folder, id+"_thumb.jpg")
	if err := imaging.Save(thumb, dst); err != nil {
		log.Printf("CreateThumb save error for %s: %v", id, err)
	}
}
