package folio

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// loginAttempts counts dashboard logins by channel ("form" or "token") and
// outcome ("success" or "failure").
var loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "folio",
	Name:      "login_attempts_total",
	Help:      "Admin login attempts by channel and outcome.",
}, []string{"channel", "outcome"})
