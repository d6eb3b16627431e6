package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	likesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mingle_likes_total",
		Help: "Like attempts by outcome",
	}, []string{"outcome"})

	matchesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mingle_matches_created_total",
		Help: "Matches created from mutual likes",
	})

	matchesRevivedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mingle_matches_revived_total",
		Help: "Expired matches revived through reconnect",
	})

	reconnectRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mingle_reconnect_requests_total",
		Help: "One-sided reconnect requests recorded",
	})

	messagesAppendedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mingle_messages_appended_total",
		Help: "Chat messages appended",
	})
)
