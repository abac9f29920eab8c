package folio

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
	imageMimeJPEG = "image/jpeg"
)

// processImage decodes an image from src, resizes it down to maxImageWidth
// when wider, and encodes it as JPEG.
func processImage(src io.Reader) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// handleAboutImage stores an uploaded profile picture on the About row
// given by ?id=. The binary image replaces any external image URL.
func (a *App) handleAboutImage(c echo.Context) error {
	id, err := queryID(c)
	if err != nil {
		return err
	}
	file, err := c.FormFile("image")
	if err != nil {
		return ErrInvalid("No image file provided")
	}
	if file.Size > maxUploadSize {
		return ErrInvalid("File too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	data, err := processImage(io.LimitReader(src, maxUploadSize))
	if err != nil {
		return ErrInvalid("Invalid image: " + err.Error())
	}

	ctx := c.Request().Context()
	about, err := getRecord[About](ctx, a.Store, id)
	if err != nil {
		return notFound(err)
	}
	about.ImageData = data
	about.ImageMime = imageMimeJPEG
	about.ImageURL = ""
	if err := saveRecord(ctx, a.Store, about); err != nil {
		return err
	}
	a.Cache.Invalidate(ctx)
	return c.JSON(http.StatusOK, about.View())
}
