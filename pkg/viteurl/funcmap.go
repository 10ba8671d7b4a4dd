package viteurl

import "html/template"

// Aliases are the template function names under which the helper itself is
// registered.
var Aliases = []string{"viteUrl", "viteurl", "ViteUrl"}

// FuncMap exposes h to html/template. Each alias returns the helper, so
// templates call methods on it:
//
//	<script type="module" src="{{ (viteUrl).File "app.js" }}"></script>
//
// viteTags renders the full tag set for an entry.
func FuncMap(h *Helper) template.FuncMap {
	funcs := template.FuncMap{
		"viteTags": h.Tags,
	}
	for _, alias := range Aliases {
		funcs[alias] = func() *Helper { return h }
	}
	return funcs
}
