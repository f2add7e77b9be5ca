package policies

import (
	"time"

	"github.com/PauloHFS/blogum/internal/db"
)

// CanViewPost decide se um viewer pode ver um post. O autor sempre vê o
// próprio post (inclusive rascunhos e posts agendados); qualquer outro viewer
// só vê posts publicados, em categoria publicada, com pub_date já alcançada.
// Viewer anônimo chega aqui como db.User zero (ID 0).
func CanViewPost(viewer db.User, post db.Post, category db.Category, now time.Time) bool {
	if viewer.ID != 0 && viewer.ID == post.AuthorID {
		return true
	}
	return post.IsPublished && category.IsPublished && !post.PubDate.After(now)
}
