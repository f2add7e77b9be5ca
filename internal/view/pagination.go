package view

// Pagination alimenta o bloco "pagination" compartilhado pelos templates de
// listagem (home, categoria, perfil).
type Pagination struct {
	CurrentPage int
	TotalItems  int
	PerPage     int
}

func NewPagination(page, total, perPage int) Pagination {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	return Pagination{
		CurrentPage: page,
		TotalItems:  total,
		PerPage:     perPage,
	}
}

func (p Pagination) TotalPages() int {
	return (p.TotalItems + p.PerPage - 1) / p.PerPage
}

func (p Pagination) HasPrevious() bool {
	return p.CurrentPage > 1
}

func (p Pagination) HasNext() bool {
	return p.CurrentPage < p.TotalPages()
}

// PreviousPage e NextPage nunca saem da faixa válida; o template usa os
// valores direto no href.
func (p Pagination) PreviousPage() int {
	if p.HasPrevious() {
		return p.CurrentPage - 1
	}
	return 1
}

func (p Pagination) NextPage() int {
	if p.HasNext() {
		return p.CurrentPage + 1
	}
	return p.TotalPages()
}
