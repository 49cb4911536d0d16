package theme

import (
	"fmt"
	"strings"
	"text/template"
)

// PrePaint applies the stored preference to root synchronously. It never leaves
// content hidden: whatever happens, including a panic in a collaborator, root ends up
// marked ready. The returned error only reports what went wrong.
func PrePaint(root *Root, store Storage, scheme ColorScheme) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("theme: pre-paint panic: %v", rec)
		}
		if root != nil {
			root.MarkReady()
		}
	}()

	switch loadPreference(store) {
	case Dark:
		root.SetDark(true)
	case Light:
		root.SetDark(false)
	default:
		dark, qerr := scheme.PrefersDark()
		if qerr != nil {
			return fmt.Errorf("theme: color scheme query: %w", qerr)
		}
		root.SetDark(dark)
	}
	return nil
}

// loadPreference falls back to System when storage is missing, unreadable or holds
// an unknown value.
func loadPreference(store Storage) Preference {
	if store == nil {
		return System
	}
	v, ok, err := store.Get(StorageKey)
	if err != nil || !ok {
		return System
	}
	if p, valid := ParsePreference(v); valid {
		return p
	}
	return System
}

var scriptTmpl = template.Must(template.New("prepaint").Parse(
	`(function(){var r=document.documentElement;try{var t="system";try{t=localStorage.getItem("{{.Key}}")||"system"}catch(e){}` +
		`if(t==="{{.Dark}}"){r.classList.add("{{.Class}}")}` +
		`else if(t==="{{.Light}}"){r.classList.remove("{{.Class}}")}` +
		`else if(window.matchMedia("(prefers-color-scheme: dark)").matches){r.classList.add("{{.Class}}")}` +
		`else{r.classList.remove("{{.Class}}")}}catch(e){}finally{r.setAttribute("{{.Ready}}","true")}})();`))

var script = mustRenderScript()

func mustRenderScript() string {
	var b strings.Builder
	err := scriptTmpl.Execute(&b, map[string]string{
		"Key":   StorageKey,
		"Class": DarkClass,
		"Ready": ReadyAttr,
		"Dark":  string(Dark),
		"Light": string(Light),
	})
	if err != nil {
		panic(err)
	}
	return b.String()
}

// Script returns the browser rendition of PrePaint, meant to be inlined in <head>
// ahead of any visible markup.
func Script() string { return script }
