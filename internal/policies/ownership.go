package policies

import "github.com/PauloHFS/blogum/internal/db"

// owns é o contrato único de mutação: só o autor altera o recurso.
// Post e Comment diferem apenas no lookup, não na decisão.
func owns(user db.User, authorID int64) bool {
	return user.ID != 0 && user.ID == authorID
}

func CanEditPost(user db.User, post db.Post) bool {
	return owns(user, post.AuthorID)
}

func CanDeletePost(user db.User, post db.Post) bool {
	return owns(user, post.AuthorID)
}

func CanEditComment(user db.User, comment db.Comment) bool {
	return owns(user, comment.AuthorID)
}

func CanDeleteComment(user db.User, comment db.Comment) bool {
	return owns(user, comment.AuthorID)
}

func CanUpdateUser(actor, target db.User) bool {
	return actor.ID != 0 && actor.ID == target.ID
}
