package intelligence

import (
	"encoding/json"
	"fmt"
	"strings"

	"sprintsense/internal/domain"
)

const breakdownSystemPrompt = "You output only valid JSON arrays. No markdown, no explanations."

const evaluationSystemPrompt = "You output only valid JSON. No markdown, no explanations."

func buildBreakdownPrompt(title, description, experienceContext string, hoursForAI int) string {
	userStory := "Title: " + title
	if description != "" {
		userStory += "\n\n" + description
	}

	return fmt.Sprintf(`You are an expert Agile project manager. Break down the following work item into detailed, actionable development tasks.

WORK ITEM:
%s

DEVELOPER CONTEXT:
Tasks will be assigned to %s.

TIME CONSTRAINT:
- Maximum hours for all tasks: %d hours
- Each task should be 1-6 hours

INSTRUCTIONS:
1. Break down into 2-5 specific, actionable tasks
2. Total hours MUST NOT exceed %d hours
3. Focus on essential tasks only

RESPOND WITH ONLY A VALID JSON ARRAY:
[
  {
    "title": "Clear task title",
    "description": "What needs to be done and how",
    "hours": number,
    "priority": 1 | 2 | 3 | 4,
    "activity": "Development" | "Testing" | "Design" | "Documentation" | "Deployment" | "Requirements"
  }
]`, userStory, experienceContext, hoursForAI, hoursForAI)
}

func buildEvaluationPrompt(title, description string, tasks []domain.ChildTask, availableHours float64) string {
	var b strings.Builder

	b.WriteString("You are an expert Agile coach. Evaluate the tasks created for this User Story.\n\n")
	b.WriteString("USER STORY:\nTitle: " + title)
	if description != "" {
		b.WriteString("\nDescription: " + description)
	}

	if availableHours > 0 {
		existingHours := 0.0
		for _, t := range tasks {
			existingHours += t.Estimate
		}
		remaining := availableHours - existingHours
		if remaining < 0 {
			remaining = 0
		}
		fmt.Fprintf(&b, "\n\nTIME CONSTRAINT:\n- Total available hours: %gh\n- Existing tasks total: %gh\n- Remaining hours for new tasks: %gh\n- NEW TASKS MUST FIT WITHIN %g HOURS TOTAL. Do not suggest tasks if no time remains.",
			availableHours, existingHours, remaining, remaining)
	}

	b.WriteString("\n\nEXISTING TASKS:\n")
	if len(tasks) == 0 {
		b.WriteString("No tasks found")
	} else {
		data, _ := json.MarshalIndent(tasks, "", "  ")
		b.Write(data)
	}

	b.WriteString(`

ANALYZE AND RESPOND WITH ONLY THIS JSON STRUCTURE:
{
  "correct": [
    { "id": number, "title": "string", "reason": "why it's correct" }
  ],
  "toUpdate": [
    { "id": number, "title": "string", "issue": "what's wrong", "suggestion": "how to fix" }
  ],
  "toDelete": [
    { "id": number, "title": "string", "reason": "why to delete" }
  ],
  "newTasks": [
    { "title": "string", "description": "string", "hours": number, "reason": "why needed" }
  ],
  "summary": "Overall assessment in 1-2 sentences"
}`)

	return b.String()
}
