// Command tmpatlas generates a TextMesh Pro compatible font atlas and its
// metadata/material artifacts from a TrueType/OpenType font.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/flopp/go-findfont"

	tmpatlas "github.com/gogpu/tmpatlas"
	"github.com/gogpu/tmpatlas/assets"
	"github.com/gogpu/tmpatlas/atlas"
)

func main() {
	var (
		ttfArg     = flag.String("ttf", "", "font file path or installed font name (required)")
		charsetArg = flag.String("charset", "", "charset file path or literal characters (required)")
		atlasSize  = flag.String("atlas-size", "4096,4096", "atlas size as 'W,H'")
		pointSize  = flag.String("point-size", "auto", "sampling point size or 'auto'")
		padding    = flag.Int("padding", 7, "atlas padding in pixels")
		renderMode = flag.String("rendermode", "sdf", "render mode: sdf or raster")
		outDir     = flag.String("out", "", "output directory (default: font file's directory)")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		tmpatlas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if *ttfArg == "" || *charsetArg == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*ttfArg, *charsetArg, *atlasSize, *pointSize, *padding, *renderMode, *outDir); err != nil {
		log.Fatalf("tmpatlas: %v", err)
	}
}

func run(ttfArg, charsetArg, atlasSize, pointSizeArg string, padding int, renderMode, outDir string) error {
	width, height, err := parseAtlasSize(atlasSize)
	if err != nil {
		return err
	}
	pointSize, err := parsePointSize(pointSizeArg)
	if err != nil {
		return err
	}
	if padding <= 0 {
		return fmt.Errorf("padding must be positive, got %d", padding)
	}

	mode := atlas.RenderModeSDF
	switch strings.ToLower(renderMode) {
	case "sdf":
	case "raster":
		mode = atlas.RenderModeRaster
	default:
		return fmt.Errorf("rendermode must be sdf or raster, got %q", renderMode)
	}

	fontPath, err := resolveFont(ttfArg)
	if err != nil {
		return err
	}
	ttf, err := os.ReadFile(fontPath)
	if err != nil {
		return err
	}

	charsetText, err := loadCharsetText(charsetArg)
	if err != nil {
		return err
	}
	charset := atlas.CharsetFromText(charsetText)
	if len(charset) == 0 {
		return fmt.Errorf("charset is empty")
	}

	cfg := atlas.Config{
		PointSize:   pointSize,
		Padding:     padding,
		AtlasWidth:  width,
		AtlasHeight: height,
		Mode:        mode,
	}

	fontName := strings.TrimSuffix(filepath.Base(fontPath), filepath.Ext(fontPath))
	pkg, err := atlas.Compose(ttf, fontName, charset, cfg)
	if err != nil {
		return err
	}

	if outDir == "" {
		outDir = filepath.Dir(fontPath)
	}
	if err := assets.Save(outDir, fontName, pkg); err != nil {
		return err
	}

	fmt.Printf("point-size=%d atlas=%dx%d glyphs=%d rendermode=%s\n",
		int(pkg.Record.FaceInfo.PointSize),
		int(pkg.Record.AtlasWidth), int(pkg.Record.AtlasHeight),
		len(pkg.Record.GlyphTable),
		assets.VariantForMode(pkg.Record.AtlasRenderMode))
	return nil
}

func parseAtlasSize(value string) (int, int, error) {
	parts := strings.Split(strings.ReplaceAll(strings.TrimSpace(value), " ", ""), ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("atlas size must be in 'W,H' format, got %q", value)
	}
	width, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("atlas size must contain integers: %w", err)
	}
	height, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("atlas size must contain integers: %w", err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("atlas size must be positive, got %dx%d", width, height)
	}
	return width, height, nil
}

func parsePointSize(value string) (int, error) {
	text := strings.ToLower(strings.TrimSpace(value))
	if text == "auto" {
		return 0, nil
	}
	size, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("point size must be an integer or 'auto': %w", err)
	}
	if size <= 0 {
		return 0, fmt.Errorf("point size must be positive or 'auto', got %d", size)
	}
	return size, nil
}

// resolveFont accepts a path to a font file, a file name relative to the
// working directory (with or without extension), or an installed font name
// looked up through the system font directories.
func resolveFont(arg string) (string, error) {
	if fileExists(arg) {
		return arg, nil
	}
	if !strings.EqualFold(filepath.Ext(arg), ".ttf") && !strings.EqualFold(filepath.Ext(arg), ".otf") {
		for _, ext := range []string{".ttf", ".otf"} {
			if candidate := arg + ext; fileExists(candidate) {
				return candidate, nil
			}
		}
	}
	path, err := findfont.Find(arg)
	if err != nil {
		return "", fmt.Errorf("font not found: %q", arg)
	}
	return path, nil
}

// loadCharsetText treats the argument as a file path when such a file
// exists, and as literal charset characters otherwise. Arguments that look
// like paths but point nowhere are reported as missing files instead of
// silently becoming a charset of slashes.
func loadCharsetText(arg string) (string, error) {
	if fileExists(arg) {
		data, err := os.ReadFile(arg)
		if err != nil {
			return "", err
		}
		return atlas.DecodeCharsetFile(data)
	}
	looksLikePath := strings.ContainsAny(arg, `/\`) || strings.HasSuffix(strings.ToLower(arg), ".txt")
	if looksLikePath {
		return "", fmt.Errorf("charset file not found: %q", arg)
	}
	return arg, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
