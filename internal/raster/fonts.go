package raster

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// FontStyle represents font style variations.
type FontStyle int

const (
	// FontStyleRegular is the regular/normal font style.
	FontStyleRegular FontStyle = iota
	// FontStyleBold is the bold font style.
	FontStyleBold
	// FontStyleItalic is the italic font style.
	FontStyleItalic
	// FontStyleBoldItalic is the bold and italic font style.
	FontStyleBoldItalic
)

// String returns the string representation of a FontStyle.
func (fs FontStyle) String() string {
	switch fs {
	case FontStyleRegular:
		return "regular"
	case FontStyleBold:
		return "bold"
	case FontStyleItalic:
		return "italic"
	case FontStyleBoldItalic:
		return "bold-italic"
	default:
		return "unknown"
	}
}

// ParseFontStyle parses a string into a FontStyle.
func ParseFontStyle(s string) (FontStyle, error) {
	switch s {
	case "regular", "normal", "":
		return FontStyleRegular, nil
	case "bold":
		return FontStyleBold, nil
	case "italic":
		return FontStyleItalic, nil
	case "bold-italic", "bolditalic", "bold_italic":
		return FontStyleBoldItalic, nil
	default:
		return FontStyleRegular, fmt.Errorf("unknown font style: %s", s)
	}
}

type fontKey struct {
	family string
	style  FontStyle
}

type faceKey struct {
	family string
	style  FontStyle
	size   float64
}

// FontManager manages font sources, sized face caching, family aliases,
// and fallback resolution. Lookup is case-insensitive. It ships with the
// embedded Go font families ("GoSans", "GoMono") plus aliases matching the
// familiar names educational sketches use ("Helvetica", "Courier").
type FontManager struct {
	mu            sync.RWMutex
	sources       map[fontKey]*text.FontSource
	aliases       map[string]string
	faces         map[faceKey]text.Face
	canonical     map[string]string
	defaultFamily string
}

// NewFontManager creates a FontManager preloaded with the embedded Go fonts.
func NewFontManager() *FontManager {
	fm := &FontManager{
		sources:       make(map[fontKey]*text.FontSource),
		aliases:       make(map[string]string),
		faces:         make(map[faceKey]text.Face),
		canonical:     make(map[string]string),
		defaultFamily: "gosans",
	}
	fm.loadEmbeddedFonts()
	return fm
}

func (fm *FontManager) loadEmbeddedFonts() {
	fm.addEmbedded("GoSans", FontStyleRegular, goregular.TTF)
	fm.addEmbedded("GoSans", FontStyleBold, gobold.TTF)
	fm.addEmbedded("GoSans", FontStyleItalic, goitalic.TTF)
	fm.addEmbedded("GoSans", FontStyleBoldItalic, gobolditalic.TTF)

	fm.addEmbedded("GoMono", FontStyleRegular, gomono.TTF)
	fm.addEmbedded("GoMono", FontStyleBold, gomonobold.TTF)
	fm.addEmbedded("GoMono", FontStyleItalic, gomonoitalic.TTF)
	fm.addEmbedded("GoMono", FontStyleBoldItalic, gomonobolditalic.TTF)

	for alias, family := range map[string]string{
		"Go":        "GoSans",
		"Helvetica": "GoSans",
		"Arial":     "GoSans",
		"sans":      "GoSans",
		"Courier":   "GoMono",
		"mono":      "GoMono",
		"monospace": "GoMono",
	} {
		fm.aliases[strings.ToLower(alias)] = strings.ToLower(family)
	}
}

// addEmbedded registers an embedded font, ignoring parse failures since
// the bundled TTF data is known good.
func (fm *FontManager) addEmbedded(family string, style FontStyle, data []byte) {
	source, err := text.NewFontSource(data)
	if err != nil {
		return
	}
	key := strings.ToLower(family)
	fm.sources[fontKey{family: key, style: style}] = source
	fm.canonical[key] = family
}

// RegisterFont parses TTF/OTF data and registers it under a family and style.
func (fm *FontManager) RegisterFont(family string, style FontStyle, data []byte) error {
	source, err := text.NewFontSource(data)
	if err != nil {
		return fmt.Errorf("failed to parse font data: %w", err)
	}

	fm.mu.Lock()
	defer fm.mu.Unlock()
	key := strings.ToLower(family)
	fm.sources[fontKey{family: key, style: style}] = source
	fm.canonical[key] = family
	return nil
}

// LoadFontFile reads a font file and registers it under a family and style.
func (fm *FontManager) LoadFontFile(family string, style FontStyle, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read font file %s: %w", path, err)
	}
	return fm.RegisterFont(family, style, data)
}

// RegisterAlias registers an alias name for an existing family.
func (fm *FontManager) RegisterAlias(alias, family string) error {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	key := strings.ToLower(family)
	if _, ok := fm.canonical[key]; !ok {
		return fmt.Errorf("font family %s not found", family)
	}
	fm.aliases[strings.ToLower(alias)] = key
	return nil
}

// resolve maps a requested family name through the alias table to a
// canonical lowercase key. Callers hold at least a read lock.
func (fm *FontManager) resolve(family string) string {
	key := strings.ToLower(family)
	if target, ok := fm.aliases[key]; ok {
		return target
	}
	return key
}

// HasFamily reports whether a family name or alias is registered.
func (fm *FontManager) HasFamily(family string) bool {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	_, ok := fm.canonical[fm.resolve(family)]
	return ok
}

// Families returns the sorted canonical family names, excluding aliases.
func (fm *FontManager) Families() []string {
	fm.mu.RLock()
	defer fm.mu.RUnlock()

	families := make([]string, 0, len(fm.canonical))
	for _, name := range fm.canonical {
		families = append(families, name)
	}
	sort.Strings(families)
	return families
}

// Face returns a sized face for the family and style. Unknown families
// fall back to the default family; missing styles fall back toward the
// regular style. Faces are cached per family, style, and size.
func (fm *FontManager) Face(family string, style FontStyle, size float64) (text.Face, error) {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	key := fm.resolve(family)
	if _, ok := fm.canonical[key]; !ok {
		key = fm.defaultFamily
	}

	ck := faceKey{family: key, style: style, size: size}
	if face, ok := fm.faces[ck]; ok {
		return face, nil
	}

	source := fm.lookupWithFallback(key, style)
	if source == nil {
		return nil, fmt.Errorf("font family %q not found", family)
	}

	face := source.Face(size)
	fm.faces[ck] = face
	return face, nil
}

// lookupWithFallback finds the closest registered source for a style.
// Callers hold the lock.
func (fm *FontManager) lookupWithFallback(family string, style FontStyle) *text.FontSource {
	if source, ok := fm.sources[fontKey{family: family, style: style}]; ok {
		return source
	}

	if style == FontStyleBoldItalic {
		if source, ok := fm.sources[fontKey{family: family, style: FontStyleBold}]; ok {
			return source
		}
		if source, ok := fm.sources[fontKey{family: family, style: FontStyleItalic}]; ok {
			return source
		}
	}

	if source, ok := fm.sources[fontKey{family: family, style: FontStyleRegular}]; ok {
		return source
	}
	if family != fm.defaultFamily {
		return fm.lookupWithFallback(fm.defaultFamily, style)
	}
	return nil
}

// DefaultFamily returns the canonical name of the default font family.
func (fm *FontManager) DefaultFamily() string {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	return fm.canonical[fm.defaultFamily]
}

// SetDefaultFamily sets the fallback family used for unknown names.
func (fm *FontManager) SetDefaultFamily(family string) error {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	key := fm.resolve(family)
	if _, ok := fm.canonical[key]; !ok {
		return fmt.Errorf("font family %s not found", family)
	}
	fm.defaultFamily = key
	return nil
}
