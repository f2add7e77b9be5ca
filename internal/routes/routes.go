package routes

import "fmt"

const (
	Home        = "/"
	Login       = "/login"
	Logout      = "/logout"
	Register    = "/register"
	PostCreate  = "/posts/create"
	ProfileEdit = "/profile/edit"
	Health      = "/health"
	Metrics     = "/metrics"
)

// PostDetail builds the canonical detail path for a post. Redirects after a
// failed ownership check must be built from the resolved resource, never from
// the raw route parameter.
func PostDetail(postID int64) string {
	return fmt.Sprintf("/posts/%d", postID)
}

func PostEdit(postID int64) string {
	return fmt.Sprintf("/posts/%d/edit", postID)
}

func PostDelete(postID int64) string {
	return fmt.Sprintf("/posts/%d/delete", postID)
}

func PostComment(postID int64) string {
	return fmt.Sprintf("/posts/%d/comment", postID)
}

func CommentEdit(postID, commentID int64) string {
	return fmt.Sprintf("/post/%d/edit_comment/%d", postID, commentID)
}

func CommentDelete(postID, commentID int64) string {
	return fmt.Sprintf("/post/%d/delete_comment/%d", postID, commentID)
}

func Category(slug string) string {
	return "/category/" + slug
}

func Profile(username string) string {
	return "/profile/" + username
}
