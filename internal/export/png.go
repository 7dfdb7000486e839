package export

import (
	"fmt"
	"os"

	"github.com/san-kum/driftfield/internal/raster"
)

// WritePNG saves the surface's current image to path.
func WritePNG(path string, s *raster.Surface) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encoding png: %w", err)
	}
	return f.Close()
}
