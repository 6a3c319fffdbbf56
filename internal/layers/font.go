package layers

import "strings"

// Font names a typeface at a point size.
type Font struct {
	Name string
	Size float32
}

var defaultFontCatalog = []string{
	"Helvetica",
	"Helvetica-Bold",
	"Helvetica-Oblique",
	"Times-Roman",
	"Times-Bold",
	"Courier",
	"Courier-Bold",
	"Arial",
	"Geneva",
	"Lucida Grande",
	"Menlo",
	"Monaco",
}

// FontResolver maps stored font names to available fonts.
type FontResolver struct {
	system  string
	catalog map[string]string
}

// NewFontResolver returns a resolver over the default catalog plus extra
// names. Lookups are case-insensitive.
func NewFontResolver(system string, extra ...string) *FontResolver {
	r := &FontResolver{system: system, catalog: make(map[string]string)}
	for _, name := range defaultFontCatalog {
		r.catalog[strings.ToLower(name)] = name
	}
	for _, name := range extra {
		r.catalog[strings.ToLower(name)] = name
	}
	if system != "" {
		r.catalog[strings.ToLower(system)] = system
	}
	return r
}

// System returns the fallback font name.
func (r *FontResolver) System() string { return r.system }

// Resolve returns the named font, or the system font at the same size when
// the name is unknown.
func (r *FontResolver) Resolve(name string, size float32) Font {
	if canonical, ok := r.catalog[strings.ToLower(strings.TrimSpace(name))]; ok {
		return Font{Name: canonical, Size: size}
	}
	return Font{Name: r.system, Size: size}
}
