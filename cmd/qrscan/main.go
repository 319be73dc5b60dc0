// Command qrscan decodes a QR code out of an image file and prints its
// text to stdout.
//
// Grounded on the teacher's cmd/barcodescan/main.go: flag parsing, per-file
// loop with a non-zero exit code on any failure, and a panic-recovery
// wrapper around the decode call. Narrowed to one format and one output per
// file instead of a multi-format, multi-result scan.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"

	"qrscan"
)

func main() {
	log.SetFlags(0)
	offsetFlag := flag.String("brightness-offsets", "0", "comma-separated brightness offsets to retry binarization with, in order")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qrscan [flags] <image-file> [image-file...]\n\n")
		fmt.Fprintf(os.Stderr, "Decode a QR code from image files (PNG, JPEG, BMP).\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	offsets, err := parseOffsets(*offsetFlag)
	if err != nil {
		log.Fatalf("invalid -brightness-offsets: %v", err)
	}

	exitCode := 0
	multi := flag.NArg() > 1
	for _, path := range flag.Args() {
		text, err := scanFile(path, offsets)
		if err != nil {
			log.Printf("%s: %v", path, err)
			exitCode = 1
			continue
		}
		if multi {
			fmt.Printf("%s: %s\n", path, text)
		} else {
			fmt.Println(text)
		}
	}
	os.Exit(exitCode)
}

func parseOffsets(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	offsets := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p, err)
		}
		offsets = append(offsets, v)
	}
	return offsets, nil
}

// scanFile decodes path's image data and hands the raw RGBA pixels to
// qrscan.Decode, recovering from any panic a malformed image could trigger
// deep in the pipeline and reporting it as a plain error instead.
func scanFile(path string, offsets []int) (text string, err error) {
	f, ferr := os.Open(path)
	if ferr != nil {
		return "", ferr
	}
	defer f.Close()

	img, _, derr := image.Decode(f)
	if derr != nil {
		return "", fmt.Errorf("decode image: %w", derr)
	}

	width, height, pixels := toRGBABytes(img)

	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("decoder panic: %v", r)
		}
	}()
	return qrscan.Decode(width, height, pixels, qrscan.WithBrightnessOffsets(offsets))
}

// toRGBABytes flattens img into a row-major R,G,B,A byte buffer, grounded
// on imagesource.go's NewImageLuminanceSource bounds/At/RGBA conversion
// loop, adapted to keep all four channels instead of collapsing to luma —
// qrscan.Decode does that conversion internally.
func toRGBABytes(img image.Image) (width, height int, pixels []byte) {
	bounds := img.Bounds()
	width, height = bounds.Dx(), bounds.Dy()
	pixels = make([]byte, width*height*4)
	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			pixels[i] = byte(r >> 8)
			pixels[i+1] = byte(g >> 8)
			pixels[i+2] = byte(b >> 8)
			pixels[i+3] = byte(a >> 8)
			i += 4
		}
	}
	return width, height, pixels
}
