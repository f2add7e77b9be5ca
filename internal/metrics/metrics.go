package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"path", "method", "status"})

	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "posts_created_total",
		Help: "Total number of posts created",
	})

	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "comments_created_total",
		Help: "Total number of comments created",
	})

	OwnershipDenied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ownership_denied_total",
		Help: "Mutation attempts redirected because the viewer does not own the resource",
	}, []string{"resource"})
)
