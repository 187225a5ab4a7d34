package models

type UploadResponse struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	CVText       string `json:"cv_text"`
}

type StartRequest struct {
	CVText     string `json:"cv_text"`
	JobRole    string `json:"job_role"`
	JobCompany string `json:"job_company"`
	JobCountry string `json:"job_country"`
}

type StartResponse struct {
	SessionID string       `json:"session_id"`
	Questions *QuestionSet `json:"questions"`
}

type FinishRequest struct {
	SessionID  string           `json:"session_id"`
	Transcript []TranscriptTurn `json:"transcript"`
}

type FinishResponse struct {
	FinalReview *PostInterviewReport `json:"final_review"`
}

type SimulateResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type SimulateResultResponse struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	Result       *WorkflowRecord `json:"result,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
}
