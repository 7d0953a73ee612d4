package output

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/pflag"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// Options control how a rendered image is written.
type Options struct {
	// Dir is the directory images are written to.
	Dir string
	// Format is "png" or "tiff".
	Format string
	// Scale resizes the image before encoding; 1 keeps the rendered size.
	Scale float64
}

// DefaultOptions writes full-size PNGs to the working directory.
func DefaultOptions() Options {
	return Options{Dir: ".", Format: "png", Scale: 1}
}

// AddFlags registers flags setting o on flags.
func (o *Options) AddFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.Dir, "out", "o", o.Dir, "directory to write images to")
	flags.StringVar(&o.Format, "format", o.Format, "image format: png or tiff")
	flags.Float64Var(&o.Scale, "scale", o.Scale, "factor to resize the rendered image by before saving")
}

func (o Options) ext() (string, error) {
	switch o.Format {
	case "png":
		return ".png", nil
	case "tiff":
		return ".tiff", nil
	default:
		return "", fmt.Errorf("unknown image format %q", o.Format)
	}
}

// Save encodes img to a file named after name in o.Dir and returns the path written. If
// name.ext already exists, name_1.ext, name_2.ext and so on are tried in turn.
func (o Options) Save(img image.Image, name string) (string, error) {
	ext, err := o.ext()
	if err != nil {
		return "", err
	}
	if !(o.Scale > 0) {
		return "", fmt.Errorf("scale must be positive, got %g", o.Scale)
	}

	if err := os.MkdirAll(o.Dir, os.ModePerm); err != nil {
		return "", err
	}

	path, err := FreePath(o.Dir, name, ext)
	if err != nil {
		return "", err
	}

	if o.Scale != 1 {
		img = Rescale(img, o.Scale)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}

	if err := encode(f, img, o.Format); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return path, nil
}

func encode(w io.Writer, img image.Image, format string) error {
	if format == "tiff" {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	return png.Encode(w, img)
}

// FreePath returns the first of dir/name+ext, dir/name_1+ext, dir/name_2+ext, ... that does
// not exist yet.
func FreePath(dir, name, ext string) (string, error) {
	path := filepath.Join(dir, name+ext)

	for i := 1; ; i++ {
		_, err := os.Stat(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return path, nil
		case err != nil:
			return "", err
		}

		path = filepath.Join(dir, name+"_"+strconv.Itoa(i)+ext)
	}
}

// Rescale resizes img by factor with Catmull-Rom resampling.
func Rescale(img image.Image, factor float64) *image.RGBA {
	b := img.Bounds()
	w := max(1, int(float64(b.Dx())*factor+0.5))
	h := max(1, int(float64(b.Dy())*factor+0.5))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// CopyOpFile copies the op-file an image was rendered from next to the image, as
// <image name without extension>_op.dat, replacing any previous copy.
func CopyOpFile(opFile, imagePath string) (string, error) {
	dst := imagePath[:len(imagePath)-len(filepath.Ext(imagePath))] + "_op.dat"

	in, err := os.Open(opFile)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return "", err
	}
	return dst, out.Close()
}
