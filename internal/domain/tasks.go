package domain

// GeneratedTask is one LLM-proposed child task, after normalization and
// experience scaling, as shown to the user for review.
type GeneratedTask struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Hours         float64 `json:"hours"`
	OriginalHours float64 `json:"original_hours"`
	Priority      int     `json:"priority"`
	Activity      string  `json:"activity"`
	Selected      bool    `json:"selected"`
}

// ChildTask is a summary of an existing child Task, used as evaluation
// context for the parent story.
type ChildTask struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Estimate    float64 `json:"estimate"`
	Activity    string  `json:"activity"`
	State       string  `json:"state"`
}

// TaskVerdict records an evaluation verdict on an existing task.
type TaskVerdict struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// TaskRevision records a suggested change to an existing task.
type TaskRevision struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
}

// SuggestedTask is a new task the evaluation proposes adding.
type SuggestedTask struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
	Reason      string  `json:"reason"`
}

// TaskEvaluation is the structured result of evaluating a story's child
// tasks against the story itself.
type TaskEvaluation struct {
	Correct  []TaskVerdict  `json:"correct"`
	ToUpdate []TaskRevision `json:"toUpdate"`
	ToDelete []TaskVerdict  `json:"toDelete"`
	NewTasks []SuggestedTask `json:"newTasks"`
	Summary  string         `json:"summary"`
}
