package quiz

import "errors"

var (
	// ErrInvalidChoice is returned when a submitted choice index is out
	// of range for the current question. Session state is unchanged.
	ErrInvalidChoice = errors.New("choice index out of range")

	// ErrSessionCompleted is returned when an answer is submitted to a
	// session that has already finished its round.
	ErrSessionCompleted = errors.New("session already completed")

	// ErrSessionNotStarted is returned for operations that need a
	// running session.
	ErrSessionNotStarted = errors.New("session not started")

	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("session already started")

	// ErrNotCompleted is returned when a summary or study plan is
	// requested before the round is over.
	ErrNotCompleted = errors.New("session not completed yet")

	// ErrPlanExists is returned when a study plan was already generated
	// for the session.
	ErrPlanExists = errors.New("study plan already generated for this session")

	// ErrNoWrongAnswer is returned when an explanation is requested but
	// the last answer was not incorrect.
	ErrNoWrongAnswer = errors.New("no incorrect answer to explain")
)
