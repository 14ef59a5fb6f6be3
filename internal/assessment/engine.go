package assessment

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Fixed steps of the wizard. Steps 2..N+1 are the category steps
// (category index = step - 2), N+2 is the summary and N+3 the
// confirmation, where N is the number of categories.
const (
	StepWelcome      = 0
	StepDemographics = 1
	firstCategory    = 2
)

// Store is the key-value persistence backend the engine writes through.
// Implementations live in internal/persist; the engine only needs string
// keys and serializable values.
type Store interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// Persistence key prefixes. Keys are scoped per store kind and per user so
// two users on the same device never see each other's in-progress data.
const (
	answersKeyPrefix      = "answers/"
	demographicsKeyPrefix = "demographics/"
	completionKeyPrefix   = "completion/"
)

// Options configures an Engine. Everything is optional: without a UserID
// or Store the wizard runs purely in-memory, without a Logger persistence
// problems go to a nop logger, and without OnStepChange navigation emits
// no signal.
type Options struct {
	UserID       string
	Store        Store
	Submit       SubmitFunc
	Logger       *zap.Logger
	OnStepChange func()
}

// Engine owns the wizard state: the current step, the answer and
// demographics stores, and the gating rules between them. All operations
// are synchronous; exactly one session owns an Engine at a time.
type Engine struct {
	catalog *Catalog
	rules   Rules

	answers      *Answers
	demographics Demographics
	step         int

	userID       string
	store        Store
	submit       SubmitFunc
	onStepChange func()
	log          *zap.Logger
}

// State is a read-only snapshot of the engine for the presentation layer.
type State struct {
	Step          int
	Answers       map[int][]int
	Demographics  Demographics
	TotalSelected int
}

// New creates an engine at the welcome step with empty stores.
func New(catalog *Catalog, rules Rules, opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		catalog:      catalog,
		rules:        rules,
		answers:      NewAnswers(catalog),
		step:         StepWelcome,
		userID:       opts.UserID,
		store:        opts.Store,
		submit:       opts.Submit,
		onStepChange: opts.OnStepChange,
		log:          log,
	}
}

// SetOnStepChange replaces the step-change hook. The presentation layer
// registers here once it exists; the hook fires on every successful
// Start/Next/Prev so the view can scroll back to the top.
func (e *Engine) SetOnStepChange(fn func()) {
	e.onStepChange = fn
}

// Catalog returns the engine's read-only catalog.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Rules returns the global selection rules.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Step returns the current wizard step.
func (e *Engine) Step() int {
	return e.step
}

// SummaryStep returns the step index of the summary screen.
func (e *Engine) SummaryStep() int {
	return e.catalog.Len() + 2
}

// ConfirmationStep returns the terminal step index.
func (e *Engine) ConfirmationStep() int {
	return e.catalog.Len() + 3
}

// CategoryAt returns the category shown at the given step, or nil when the
// step is not a category step.
func (e *Engine) CategoryAt(step int) *Category {
	idx := step - firstCategory
	if idx < 0 || idx >= e.catalog.Len() {
		return nil
	}
	return e.catalog.At(idx)
}

// State returns the current step plus deep copies of both stores and the
// derived total.
func (e *Engine) State() State {
	return State{
		Step:          e.step,
		Answers:       e.answers.Snapshot(),
		Demographics:  e.demographics,
		TotalSelected: e.answers.Total(),
	}
}

// Demographics returns a copy of the current demographics record.
func (e *Engine) Demographics() Demographics {
	return e.demographics
}

// Answers returns the live answer store for read-only use by validity
// queries and the presentation layer.
func (e *Engine) Answers() *Answers {
	return e.answers
}

// ─── Navigation ──────────────────────────────────────────────────────────────

// Start moves from the welcome step to demographics. No-op elsewhere.
func (e *Engine) Start() {
	if e.step != StepWelcome {
		return
	}
	e.step = StepDemographics
	e.stepChanged()
}

// Next advances one step when the current step's validity gate passes.
// A blocked transition is silently refused; the validity queries tell the
// caller why. Next never leaves the summary step: leaving it forward is
// the submission's job.
func (e *Engine) Next() {
	switch {
	case e.step == StepDemographics:
		if !DemographicsValid(e.demographics) {
			return
		}
	case e.step >= firstCategory && e.step < e.SummaryStep():
		cat := e.CategoryAt(e.step)
		if !CategoryValidity(cat, e.answers).Valid {
			return
		}
	default:
		return
	}
	e.step++
	e.stepChanged()
}

// Prev moves one step back. Unconditional for every step between
// demographics and the summary; a no-op at the welcome and confirmation
// steps.
func (e *Engine) Prev() {
	if e.step < StepDemographics || e.step > e.SummaryStep() {
		return
	}
	e.step--
	e.stepChanged()
}

// Reset returns to the welcome step, clears both stores and deletes every
// persisted key for the current user, including the completion record.
func (e *Engine) Reset() {
	e.step = StepWelcome
	e.answers.Clear()
	e.demographics = Demographics{}

	if !e.persistent() {
		return
	}
	for _, key := range []string{
		answersKeyPrefix + e.userID,
		demographicsKeyPrefix + e.userID,
		completionKeyPrefix + e.userID,
	} {
		if err := e.store.Delete(key); err != nil {
			e.log.Warn("deleting persisted state", zap.String("key", key), zap.Error(err))
		}
	}
}

// stepChanged emits the scroll-to-top signal to the presentation layer.
func (e *Engine) stepChanged() {
	if e.onStepChange != nil {
		e.onStepChange()
	}
}

// ─── Mutations ───────────────────────────────────────────────────────────────

// UpdateAnswer toggles a question selection and persists the answer store
// on success. Unknown ids and cap-exceeding toggles are rejected without
// touching the store.
func (e *Engine) UpdateAnswer(categoryID, questionID int, checked bool) error {
	changed, err := e.answers.Toggle(categoryID, questionID, checked)
	if err != nil {
		return err
	}
	if changed {
		e.persistAnswers()
	}
	return nil
}

// UpdateDemographic writes one demographics field and persists the record.
func (e *Engine) UpdateDemographic(field Field, value string) error {
	if err := e.demographics.Set(field, value); err != nil {
		return err
	}
	e.persistDemographics()
	return nil
}

// ─── Validity queries ────────────────────────────────────────────────────────

// CategoryValidity reports the bound check for one category.
func (e *Engine) CategoryValidity(categoryID int) (CategoryStatus, bool) {
	cat, ok := e.catalog.Category(categoryID)
	if !ok {
		return CategoryStatus{}, false
	}
	return CategoryValidity(cat, e.answers), true
}

// AtCap reports whether a category can accept no further selections.
func (e *Engine) AtCap(categoryID int) bool {
	cat, ok := e.catalog.Category(categoryID)
	if !ok {
		return false
	}
	return AtCap(cat, e.answers)
}

// DemographicsValid reports whether the demographics step gate passes.
func (e *Engine) DemographicsValid() bool {
	return DemographicsValid(e.demographics)
}

// GlobalValid reports whether the total selection count is inside the
// global rules.
func (e *Engine) GlobalValid() bool {
	return GlobalValid(e.answers, e.rules)
}

// TotalSelected returns the derived total selection count.
func (e *Engine) TotalSelected() int {
	return e.answers.Total()
}

// ─── Persistence ─────────────────────────────────────────────────────────────

func (e *Engine) persistent() bool {
	return e.store != nil && e.userID != ""
}

// Load reads both stores back from persistence. Missing or unparseable
// values degrade to the empty initial state; a completion record jumps the
// wizard straight to the confirmation step. Never returns an error to the
// caller: a broken backend means starting fresh.
func (e *Engine) Load() {
	if !e.persistent() {
		return
	}

	if data, ok := e.loadKey(answersKeyPrefix + e.userID); ok {
		var snapshot map[int][]int
		if err := json.Unmarshal(data, &snapshot); err != nil {
			e.log.Warn("corrupt answers snapshot, starting fresh", zap.Error(err))
		} else {
			e.answers.restore(snapshot)
		}
	}

	if data, ok := e.loadKey(demographicsKeyPrefix + e.userID); ok {
		var demo Demographics
		if err := json.Unmarshal(data, &demo); err != nil {
			e.log.Warn("corrupt demographics snapshot, starting fresh", zap.Error(err))
		} else {
			demo.normalize()
			e.demographics = demo
		}
	}

	if data, ok := e.loadKey(completionKeyPrefix + e.userID); ok {
		var record Completion
		if err := json.Unmarshal(data, &record); err == nil && record.SubmissionID != "" {
			e.step = e.ConfirmationStep()
		}
	}
}

func (e *Engine) loadKey(key string) ([]byte, bool) {
	data, ok, err := e.store.Get(key)
	if err != nil {
		e.log.Warn("reading persisted state", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return data, ok
}

// persistAnswers writes the answer store after a successful mutation.
// Write failures are logged and swallowed: the wizard keeps working
// in-memory even when the backend is broken.
func (e *Engine) persistAnswers() {
	if !e.persistent() {
		return
	}
	data, err := json.Marshal(e.answers.Snapshot())
	if err != nil {
		e.log.Warn("encoding answers", zap.Error(err))
		return
	}
	if err := e.store.Set(answersKeyPrefix+e.userID, data); err != nil {
		e.log.Warn("persisting answers", zap.Error(err))
	}
}

func (e *Engine) persistDemographics() {
	if !e.persistent() {
		return
	}
	data, err := json.Marshal(e.demographics)
	if err != nil {
		e.log.Warn("encoding demographics", zap.Error(err))
		return
	}
	if err := e.store.Set(demographicsKeyPrefix+e.userID, data); err != nil {
		e.log.Warn("persisting demographics", zap.Error(err))
	}
}
