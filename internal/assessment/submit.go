package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrNotAtSummary is returned when Submit is called from any step
	// other than the summary.
	ErrNotAtSummary = errors.New("submission is only possible from the summary step")

	// ErrSubmissionBlocked is returned when the global total or a
	// category's own bounds are outside their limits at submission time.
	ErrSubmissionBlocked = errors.New("selections are outside the allowed bounds")

	// ErrNoTransport is returned when no submit collaborator was wired in.
	ErrNoTransport = errors.New("no submit transport configured")
)

// CategorySummary is the per-category line of the submission payload.
type CategorySummary struct {
	ID       int    `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Selected int    `json:"selected" yaml:"selected"`
}

// Payload is the immutable record handed to the submit transport.
type Payload struct {
	SubmissionID  string            `json:"submissionId" yaml:"submission_id"`
	UserID        string            `json:"userId" yaml:"user_id"`
	Demographics  Demographics      `json:"demographics" yaml:"demographics"`
	Answers       map[int][]int     `json:"answers" yaml:"answers"`
	TotalSelected int               `json:"totalSelected" yaml:"total_selected"`
	SubmittedAt   time.Time         `json:"submittedAt" yaml:"submitted_at"`
	Categories    []CategorySummary `json:"categories" yaml:"categories"`
}

// SubmitFunc is the external transport the payload is handed to. Endpoint,
// retries and auth are entirely its concern.
type SubmitFunc func(ctx context.Context, payload Payload) error

// Completion is the persisted marker that a user already finished the
// assessment. Future mounts seeing it skip straight to the confirmation
// step instead of restarting.
type Completion struct {
	SubmissionID  string    `json:"submissionId"`
	SubmittedAt   time.Time `json:"submittedAt"`
	TotalSelected int       `json:"totalSelected"`
}

// Submit assembles the payload and hands it to the transport. It requires
// the summary step, a passing global bound, and every category inside its
// own bounds. On transport success the wizard moves to the confirmation
// step and a completion record is persisted; on failure the step is
// unchanged and the error is surfaced, with no automatic retry.
func (e *Engine) Submit(ctx context.Context) (Payload, error) {
	if e.step != e.SummaryStep() {
		return Payload{}, ErrNotAtSummary
	}
	if !GlobalValid(e.answers, e.rules) {
		return Payload{}, ErrSubmissionBlocked
	}
	for _, cat := range e.catalog.Categories() {
		if !CategoryValidity(&cat, e.answers).Valid {
			return Payload{}, ErrSubmissionBlocked
		}
	}
	if e.submit == nil {
		return Payload{}, ErrNoTransport
	}

	payload := e.assemblePayload()
	if err := e.submit(ctx, payload); err != nil {
		return Payload{}, err
	}

	e.step = e.ConfirmationStep()
	e.writeCompletion(Completion{
		SubmissionID:  payload.SubmissionID,
		SubmittedAt:   payload.SubmittedAt,
		TotalSelected: payload.TotalSelected,
	})
	return payload, nil
}

func (e *Engine) assemblePayload() Payload {
	categories := make([]CategorySummary, 0, e.catalog.Len())
	for _, cat := range e.catalog.Categories() {
		categories = append(categories, CategorySummary{
			ID:       cat.ID,
			Title:    cat.Title,
			Selected: e.answers.Count(cat.ID),
		})
	}

	return Payload{
		SubmissionID:  uuid.NewString(),
		UserID:        e.userID,
		Demographics:  e.demographics,
		Answers:       e.answers.Snapshot(),
		TotalSelected: e.answers.Total(),
		SubmittedAt:   time.Now().UTC(),
		Categories:    categories,
	}
}

// writeCompletion persists the completion record under its own key,
// distinct from the in-progress answer and demographics keys.
func (e *Engine) writeCompletion(record Completion) {
	if !e.persistent() {
		return
	}
	data, err := json.Marshal(record)
	if err != nil {
		e.log.Warn("encoding completion record", zap.Error(err))
		return
	}
	if err := e.store.Set(completionKeyPrefix+e.userID, data); err != nil {
		e.log.Warn("persisting completion record", zap.Error(err))
	}
}
