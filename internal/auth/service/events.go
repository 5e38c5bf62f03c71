package service

// EventRecorder counts authentication decisions. *metricsx.Metrics
// satisfies it; nil disables recording.
type EventRecorder interface {
	AuthEvent(event, outcome string)
}

const (
	eventLogin        = "login"
	eventRefresh      = "refresh"
	eventLogout       = "logout"
	eventRegister     = "register"
	eventAuthenticate = "authenticate"
	eventAuthorize    = "authorize"
)

func record(r EventRecorder, event string, err error) {
	if r == nil {
		return
	}
	r.AuthEvent(event, outcome(err))
}
