package overlay

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bryanchriswhite/FocusHint/internal/logger"
	"github.com/flopp/go-findfont"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
)

// loadFace resolves family to a bold face at size pixels. family may be a
// font file path, "Go" or "Go Mono" for the embedded faces, or a family name
// looked up in the user and system font directories ($XDG_DATA_HOME and
// $XDG_DATA_DIRS aware). Unknown families fall back to the embedded faces.
func loadFace(family string, size float64) (font.Face, error) {
	data, err := resolveFont(family)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse font %q: %v", ErrRender, family, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: font face %q: %v", ErrRender, family, err)
	}
	return face, nil
}

func resolveFont(family string) ([]byte, error) {
	if isFontPath(family) {
		data, err := os.ReadFile(family)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRender, err)
		}
		return data, nil
	}

	key := normalizeFamily(family)
	switch key {
	case "go":
		return gobold.TTF, nil
	case "gomono":
		return gomonobold.TTF, nil
	}

	if path := findBold(findfont.List(), key); path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			logger.WithComponent("overlay").Debug().Str("family", family).Str("path", path).Msg("Using system font")
			return data, nil
		}
	}

	logger.WithComponent("overlay").Warn().Str("family", family).Msg("Font not found, using embedded Go font")
	if strings.Contains(key, "mono") {
		return gomonobold.TTF, nil
	}
	return gobold.TTF, nil
}

func isFontPath(family string) bool {
	if strings.ContainsRune(family, os.PathSeparator) {
		return true
	}
	ext := strings.ToLower(filepath.Ext(family))
	return ext == ".ttf" || ext == ".otf"
}

func normalizeFamily(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(s))
}

// findBold picks the bold, upright TrueType/OpenType file whose name contains
// key, preferring the shortest name so "DejaVu Sans" beats "DejaVu Sans Mono".
// Ties go to the earlier path.
func findBold(paths []string, key string) string {
	found, best := "", 0
	for _, path := range paths {
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		name := normalizeFamily(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		if !strings.Contains(name, key) || !strings.Contains(name, "bold") ||
			strings.Contains(name, "italic") || strings.Contains(name, "oblique") {
			continue
		}
		if found == "" || len(name) < best {
			found, best = path, len(name)
		}
	}
	return found
}
