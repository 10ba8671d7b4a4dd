package viteurl

import (
	"html/template"
	"strings"
)

// CSS returns the URLs of every stylesheet entry name depends on, following
// static imports. It returns nothing in dev mode, where Vite injects styles
// itself.
func (h *Helper) CSS(name string) ([]string, error) {
	deps, err := h.dependencies(name)
	if err != nil || deps == nil {
		return nil, err
	}
	return deps.css, nil
}

// Preloads returns the URLs of the chunks entry name imports statically.
func (h *Helper) Preloads(name string) ([]string, error) {
	deps, err := h.dependencies(name)
	if err != nil || deps == nil {
		return nil, err
	}
	return deps.preloads, nil
}

// Tags renders the HTML needed to load entry name: the Vite client and the
// entry script in dev mode, or stylesheets, module preloads and the hashed
// entry script in production. Each call is reported to the observer.
func (h *Helper) Tags(name string) (tags template.HTML, err error) {
	devURL := ""
	defer func() {
		h.notify(name, devURL != "", err)
	}()

	if h.publicDir == "" {
		return "", ErrPublicDirRequired
	}

	var b strings.Builder

	// The hot file is read once; the mode cannot change halfway through.
	if devURL = h.DevServerURL(); devURL != "" {
		writeScript(&b, devURL+"/@vite/client")
		writeScript(&b, devURL+"/"+strings.TrimLeft(name, "/"))
		return template.HTML(b.String()), nil
	}

	deps, err := h.collect(name)
	if err != nil {
		return "", err
	}

	for _, href := range deps.css {
		writeLink(&b, "stylesheet", href)
	}
	for _, href := range deps.preloads {
		writeLink(&b, "modulepreload", href)
	}
	writeScript(&b, deps.entry)

	return template.HTML(b.String()), nil
}

type dependencies struct {
	entry    string
	css      []string
	preloads []string
}

// dependencies walks the import graph of name. It returns nil, nil in dev
// mode.
func (h *Helper) dependencies(name string) (*dependencies, error) {
	if h.publicDir == "" {
		return nil, ErrPublicDirRequired
	}
	if h.IsDev() {
		return nil, nil
	}
	return h.collect(name)
}

// collect resolves name and its static imports from the manifest.
func (h *Helper) collect(name string) (*dependencies, error) {
	if h.builder == nil {
		return nil, ErrURLBuilderRequired
	}

	manifest, err := h.Manifest()
	if err != nil {
		return nil, err
	}

	chunk, ok := manifest.Lookup(name)
	if !ok {
		return nil, unknownEntrypoint(name)
	}

	deps := &dependencies{entry: h.builder.ServerURL(h.buildPath(chunk.File))}
	seenCSS := make(map[string]bool)
	seenChunks := map[string]bool{name: true}

	var walk func(c Chunk)
	walk = func(c Chunk) {
		for _, css := range c.CSS {
			if !seenCSS[css] {
				seenCSS[css] = true
				deps.css = append(deps.css, h.builder.ServerURL(h.buildPath(css)))
			}
		}
		for _, imp := range c.Imports {
			if seenChunks[imp] {
				continue
			}
			seenChunks[imp] = true

			imported, ok := manifest.Lookup(imp)
			if !ok {
				continue
			}
			deps.preloads = append(deps.preloads, h.builder.ServerURL(h.buildPath(imported.File)))
			walk(imported)
		}
	}
	walk(chunk)

	return deps, nil
}

func writeScript(b *strings.Builder, src string) {
	b.WriteString(`<script type="module" src="`)
	b.WriteString(template.HTMLEscapeString(src))
	b.WriteString(`"></script>`)
	b.WriteByte('\n')
}

func writeLink(b *strings.Builder, rel, href string) {
	b.WriteString(`<link rel="`)
	b.WriteString(rel)
	b.WriteString(`" href="`)
	b.WriteString(template.HTMLEscapeString(href))
	b.WriteString(`">`)
	b.WriteByte('\n')
}
