package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"
)

//go:embed templates
var templatesFS embed.FS

var funcs = template.FuncMap{
	"markdown": RenderBody,
	"datetime": func(t time.Time) string {
		return t.Format("02/01/2006 15:04")
	},
}

var pages = map[string]*template.Template{}

func init() {
	names := []string{
		"index", "detail", "post_form", "post_delete", "comment_form",
		"category", "profile", "profile_form",
		"login", "register",
		"404", "500", "403csrf",
	}
	for _, name := range names {
		pages[name] = template.Must(
			template.New("base.html").Funcs(funcs).ParseFS(templatesFS,
				"templates/base.html",
				"templates/"+name+".html",
			),
		)
	}
}

// Page é o envelope comum de todas as páginas renderizadas.
type Page struct {
	Title     string
	CSRFToken string
	Viewer    any // usuário logado ou nil
	Data      any
	Errors    map[string]string // erros de validação por campo
	Flash     string
}

// Render executa o template em um buffer antes de escrever, para que um erro
// de template vire um 500 limpo em vez de uma página pela metade.
func Render(w http.ResponseWriter, status int, name string, page Page) error {
	tmpl, ok := pages[name]
	if !ok {
		return fmt.Errorf("template desconhecido: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", page); err != nil {
		return fmt.Errorf("falha ao renderizar %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// NotFound renderiza a página 404 customizada. A mesma resposta cobre
// recurso inexistente e recurso oculto pelo filtro de visibilidade.
func NotFound(w http.ResponseWriter, r *http.Request) {
	_ = Render(w, http.StatusNotFound, "404", Page{Title: "Página não encontrada"})
}

// ServerError renderiza a página 500 customizada.
func ServerError(w http.ResponseWriter, r *http.Request) {
	_ = Render(w, http.StatusInternalServerError, "500", Page{Title: "Erro interno"})
}

// CSRFFailure renderiza a página dedicada de falha de CSRF com status 403.
func CSRFFailure(w http.ResponseWriter, r *http.Request) {
	_ = Render(w, http.StatusForbidden, "403csrf", Page{Title: "Falha de verificação CSRF"})
}
