package models

// RunState tracks the pipeline runner through its fixed stage order.
type RunState string

const (
	StateQuestioning  RunState = "questioning"
	StateInterviewing RunState = "interviewing"
	StateCritiquing   RunState = "critiquing"
	StateDone         RunState = "done"
	StateFailed       RunState = "failed"
)

// RunStatus is the lifecycle of an asynchronous simulate run.
type RunStatus string

const (
	StatusQueued     RunStatus = "queued"
	StatusProcessing RunStatus = "processing"
	StatusCompleted  RunStatus = "completed"
	StatusFailed     RunStatus = "failed"
)

// TranscriptTurn is a single exchange in the interview, in chronological order.
type TranscriptTurn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// QuestionSet holds the three generated question categories.
type QuestionSet struct {
	GeneralQuestions   []string `json:"general_questions"`
	CVBasedQuestions   []string `json:"cv_based_questions"`
	TechnicalQuestions []string `json:"technical_questions"`
}

// Ordered returns the questions in interview order: general first, then
// CV-based, then technical.
func (q *QuestionSet) Ordered() []string {
	var questions []string
	questions = append(questions, q.GeneralQuestions...)
	questions = append(questions, q.CVBasedQuestions...)
	questions = append(questions, q.TechnicalQuestions...)
	return questions
}

// WorkflowRecord is the single mutable record threaded through the pipeline.
// CVText and the job fields are set at creation and never change. Each stage
// fills exactly one output field. Error is written at most once, by the first
// stage that fails; once set, no later stage runs or mutates the record.
type WorkflowRecord struct {
	CVText     string `json:"cv_text"`
	JobRole    string `json:"job_role"`
	JobCompany string `json:"job_company"`
	JobCountry string `json:"job_country"`

	Questions           *QuestionSet         `json:"questions,omitempty"`
	InterviewTranscript []TranscriptTurn     `json:"interview_transcript,omitempty"`
	FinalReview         *PostInterviewReport `json:"final_review,omitempty"`

	Error string `json:"error,omitempty"`
}
