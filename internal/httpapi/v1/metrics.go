package v1

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	createdTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "finmentor",
			Name:      "records_created_total",
			Help:      "Records created through the API, by kind",
		},
		[]string{"kind"},
	)
	lessonsCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "finmentor",
			Name:      "lessons_completed_total",
			Help:      "complete-lesson calls that succeeded",
		},
	)
	quizzesCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "finmentor",
			Name:      "quizzes_completed_total",
			Help:      "complete-quiz calls that succeeded",
		},
	)
)
