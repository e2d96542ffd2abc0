package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder backed by Prometheus counters.
type PrometheusRecorder struct {
	usersRegistered prometheus.Counter
	logins          *prometheus.CounterVec
	tokensRefreshed prometheus.Counter
	projectOps      *prometheus.CounterVec
	taskOps         *prometheus.CounterVec
}

// NewPrometheus creates a PrometheusRecorder and registers its
// collectors with the given registry.
func NewPrometheus(reg prometheus.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		usersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taskdeck_users_registered_total",
			Help: "Total number of user registrations.",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskdeck_logins_total",
			Help: "Total number of login attempts by outcome.",
		}, []string{"outcome"}),
		tokensRefreshed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taskdeck_tokens_refreshed_total",
			Help: "Total number of access tokens minted via refresh.",
		}),
		projectOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskdeck_project_operations_total",
			Help: "Total number of project mutations by operation.",
		}, []string{"operation"}),
		taskOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskdeck_task_operations_total",
			Help: "Total number of task mutations by operation.",
		}, []string{"operation"}),
	}

	reg.MustRegister(
		r.usersRegistered,
		r.logins,
		r.tokensRefreshed,
		r.projectOps,
		r.taskOps,
	)

	return r
}

// IncUserRegistered records a registration.
func (r *PrometheusRecorder) IncUserRegistered() {
	r.usersRegistered.Inc()
}

// IncLoginSuccess records a successful login.
func (r *PrometheusRecorder) IncLoginSuccess() {
	r.logins.WithLabelValues("success").Inc()
}

// IncLoginFailure records a failed login.
func (r *PrometheusRecorder) IncLoginFailure() {
	r.logins.WithLabelValues("failure").Inc()
}

// IncTokenRefreshed records a token refresh.
func (r *PrometheusRecorder) IncTokenRefreshed() {
	r.tokensRefreshed.Inc()
}

// IncProjectCreated records a project creation.
func (r *PrometheusRecorder) IncProjectCreated() {
	r.projectOps.WithLabelValues("create").Inc()
}

// IncProjectUpdated records a project update.
func (r *PrometheusRecorder) IncProjectUpdated() {
	r.projectOps.WithLabelValues("update").Inc()
}

// IncProjectDeleted records a project deletion.
func (r *PrometheusRecorder) IncProjectDeleted() {
	r.projectOps.WithLabelValues("delete").Inc()
}

// IncTaskCreated records a task creation.
func (r *PrometheusRecorder) IncTaskCreated() {
	r.taskOps.WithLabelValues("create").Inc()
}

// IncTaskUpdated records a task update.
func (r *PrometheusRecorder) IncTaskUpdated() {
	r.taskOps.WithLabelValues("update").Inc()
}

// IncTaskDeleted records a task deletion.
func (r *PrometheusRecorder) IncTaskDeleted() {
	r.taskOps.WithLabelValues("delete").Inc()
}

// IncTaskCompleted records a task completion.
func (r *PrometheusRecorder) IncTaskCompleted() {
	r.taskOps.WithLabelValues("complete").Inc()
}
