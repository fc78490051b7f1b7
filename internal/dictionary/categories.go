package dictionary

import "github.com/tinoosan/finmentor/internal/finmentor"

type CategoryDef struct {
	Code    string            `json:"code"`
	Label   string            `json:"label"`
	WebType finmentor.WebType `json:"webType"`
}

var curated = map[finmentor.WebType][]CategoryDef{
	finmentor.WebTypeWeb2: {
		{Code: "finanzas-personales", Label: "Finanzas Personales", WebType: finmentor.WebTypeWeb2},
		{Code: "inversiones", Label: "Inversiones", WebType: finmentor.WebTypeWeb2},
		{Code: "ahorro", Label: "Ahorro", WebType: finmentor.WebTypeWeb2},
		{Code: "credito", Label: "Crédito", WebType: finmentor.WebTypeWeb2},
		{Code: "impuestos", Label: "Impuestos", WebType: finmentor.WebTypeWeb2},
	},
	finmentor.WebTypeWeb3: {
		{Code: "crypto", Label: "Criptomonedas", WebType: finmentor.WebTypeWeb3},
		{Code: "defi", Label: "Finanzas Descentralizadas", WebType: finmentor.WebTypeWeb3},
		{Code: "nft", Label: "NFTs", WebType: finmentor.WebTypeWeb3},
		{Code: "wallets", Label: "Wallets", WebType: finmentor.WebTypeWeb3},
	},
}

// IsCurated reports whether code is a known category for the web type.
func IsCurated(t finmentor.WebType, code string) bool {
	for _, c := range curated[t] {
		if c.Code == code {
			return true
		}
	}
	return false
}

// CategoriesFor lists curated categories for t, or all of them (web2 first) when t is nil.
func CategoriesFor(t *finmentor.WebType) []CategoryDef {
	if t == nil {
		out := make([]CategoryDef, 0)
		for _, wt := range []finmentor.WebType{finmentor.WebTypeWeb2, finmentor.WebTypeWeb3} {
			out = append(out, curated[wt]...)
		}
		return out
	}
	out := make([]CategoryDef, len(curated[*t]))
	copy(out, curated[*t])
	return out
}
