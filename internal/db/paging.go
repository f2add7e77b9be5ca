package db

// PagingParams traduz o ?page= da URL em LIMIT/OFFSET. O PerPage vem da
// config por tipo de listagem (home, categoria, perfil).
type PagingParams struct {
	Page    int
	PerPage int
}

func (p PagingParams) Limit() int {
	if p.PerPage < 1 {
		return 10
	}
	return p.PerPage
}

// Offset trata página fora de faixa como a primeira.
func (p PagingParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}
