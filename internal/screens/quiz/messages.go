package quiz

import (
	"time"

	"github.com/jsterk/tafel/internal/session"
)

// sessionReadyMsg is sent when the session engine has been built. Exactly
// one of practice and test is set on success.
type sessionReadyMsg struct {
	practice *session.Practice
	test     *session.Test
	err      error
}

// timerTickMsg is sent every second to advance the session clock.
type timerTickMsg time.Time

// feedbackClearMsg ends a feedback flash. The sequence number guards
// against a stale timer wiping a newer flash.
type feedbackClearMsg struct {
	seq int
}
