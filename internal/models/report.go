package models

// CategoryAssessment is a scored category with its justification, used for
// both the fit assessment and the per-topic ratings.
type CategoryAssessment struct {
	Score         string `json:"score"`
	Justification string `json:"justification"`
}

// ImprovementItem is one entry of the actionable improvement plan.
type ImprovementItem struct {
	Issue     string `json:"issue"`
	Rationale string `json:"rationale"`
	Action    string `json:"action"`
	Timeline  string `json:"timeline"`
}

// PostInterviewReport is the structured output of the critique stage.
// FitAssessment is keyed by the three fixed categories (skill, behavioral,
// growth-potential); TopicRatings by whatever topics the grader picked.
type PostInterviewReport struct {
	PerformanceSummary string                        `json:"performance_summary"`
	Decision           string                        `json:"decision"`
	Strengths          []string                      `json:"strengths"`
	Weaknesses         []string                      `json:"weaknesses"`
	FitAssessment      map[string]CategoryAssessment `json:"fit_assessment"`
	TopicRatings       map[string]CategoryAssessment `json:"topic_ratings"`
	ImprovementPlan    []ImprovementItem             `json:"improvement_plan"`
	AgenticFollowup    []string                      `json:"agentic_followup,omitempty"`
}
