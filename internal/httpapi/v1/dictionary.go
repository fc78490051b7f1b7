package v1

import (
	"net/http"

	"github.com/tinoosan/finmentor/internal/dictionary"
	"github.com/tinoosan/finmentor/internal/finmentor"
	base "github.com/tinoosan/finmentor/internal/httpapi"
)

type categoryGroup struct {
	WebType    finmentor.WebType        `json:"webType"`
	Categories []dictionary.CategoryDef `json:"categories"`
}

// GET /finmentor/dictionary/categories?webType=
func (s *Server) getCategoriesDictionary(w http.ResponseWriter, r *http.Request) {
	var only *finmentor.WebType
	if raw := r.URL.Query().Get("webType"); raw != "" {
		t := finmentor.WebType(raw)
		if !t.Valid() {
			base.BadRequest(w, `Invalid web type. Must be "web2" or "web3"`)
			return
		}
		only = &t
	}
	out := []categoryGroup{}
	for _, t := range []finmentor.WebType{finmentor.WebTypeWeb2, finmentor.WebTypeWeb3} {
		if only != nil && *only != t {
			continue
		}
		out = append(out, categoryGroup{WebType: t, Categories: dictionary.CategoriesFor(&t)})
	}
	base.WriteOK(w, http.StatusOK, out, "")
}
