package view

import (
	"context"
	"html/template"

	"github.com/PauloHFS/blogum/internal/contextkeys"
	"github.com/microcosm-cc/bluemonday"
	"gitlab.com/golang-commonmark/markdown"
)

// CSRFToken retorna o token do contexto
func CSRFToken(ctx context.Context) string {
	if token, ok := ctx.Value(contextkeys.CSRFTokenKey).(string); ok {
		return token
	}
	return ""
}

var (
	md        = markdown.New(markdown.XHTMLOutput(true), markdown.Linkify(true), markdown.Typographer(true))
	sanitizer = bluemonday.UGCPolicy()
)

// RenderBody converte o texto markdown de um post em HTML sanitizado.
func RenderBody(text string) template.HTML {
	return template.HTML(sanitizer.Sanitize(md.RenderToString([]byte(text))))
}
