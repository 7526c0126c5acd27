package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"archviz/internal/dataset"

	"github.com/xuri/excelize/v2"
	xdraw "golang.org/x/image/draw"
)

const (
	// ImageAnchor is the cell the plot picture is anchored to.
	ImageAnchor = "H2"
	// CaptionCell holds the caption above the picture.
	CaptionCell = "H1"
	caption     = "Visualization"

	thumbWidth  = 400
	thumbHeight = 300
)

// Thumbnail scales src to a w x h PNG.
func Thumbnail(src image.Image, w, h int) ([]byte, error) {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// writeSpreadsheet stores the dataset rows with the plot image embedded at ImageAnchor.
func writeSpreadsheet(path string, ds *dataset.Dataset, imagePath string) error {
	img, err := loadPNG(imagePath)
	if err != nil {
		return err
	}
	thumb, err := Thumbnail(img, thumbWidth, thumbHeight)
	if err != nil {
		return err
	}

	f, err := dataset.NewWorkbook(ds)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SetCellValue(dataset.SheetName, CaptionCell, caption); err != nil {
		return fmt.Errorf("write caption: %w", err)
	}
	pic := &excelize.Picture{
		Extension: ".png",
		File:      thumb,
		Format:    &excelize.GraphicOptions{AltText: "coordinate plot"},
	}
	if err := f.AddPictureFromBytes(dataset.SheetName, ImageAnchor, pic); err != nil {
		return fmt.Errorf("embed image: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
