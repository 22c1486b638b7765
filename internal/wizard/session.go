// Package wizard holds the ad-generation wizard: the per-session state machine
// and the pipeline of provider calls that drives it.
package wizard

// Step names the screen a session is on.
type Step int

const (
	StepPrompt Step = iota
	StepQuestions
	StepResult
)

func (s Step) String() string {
	switch s {
	case StepPrompt:
		return "prompt"
	case StepQuestions:
		return "questions"
	case StepResult:
		return "result"
	default:
		return "unknown"
	}
}

func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Question is one clarifying question produced by the model.
type Question struct {
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
}

// State is the step-specific part of a session. Only the data of the current
// variant exists, so there is nothing stale to ignore after a transition.
type State interface {
	Step() Step
	isState()
}

type PromptState struct{}

type QuestionsState struct {
	Questions []Question
	Answers   map[int]string
}

type ResultState struct {
	Questions []Question
	Answers   map[int]string
	ImageURL  string
	// Caption is empty when captions are disabled or the caption call failed.
	Caption string
}

func (*PromptState) Step() Step    { return StepPrompt }
func (*QuestionsState) Step() Step { return StepQuestions }
func (*ResultState) Step() Step    { return StepResult }

func (*PromptState) isState()    {}
func (*QuestionsState) isState() {}
func (*ResultState) isState()    {}

// Session is one wizard run. It is not safe for concurrent use; callers
// serialize access (see pkg/memcache).
type Session struct {
	ID            string
	InitialPrompt string
	State         State
	Loading       bool
	ErrorMessage  string

	// epoch is bumped on reset so results of calls started before it are dropped.
	epoch uint64
}

// Ticket identifies the in-flight call a Finish* result belongs to.
type Ticket struct {
	epoch uint64
}

func NewSession(id string) *Session {
	return &Session{ID: id, State: &PromptState{}}
}

func (s *Session) Step() Step {
	return s.State.Step()
}
