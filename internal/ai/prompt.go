package ai

import (
	"strings"

	"smartcue-backend/internal/tasks"
)

const recommendationInstructions = `You are a task recommendation engine. Given the following tasks and user context, recommend which tasks should be done next. Format your response exactly as follows for each task:
- Task Name: [task title]
- Reason: [clear explanation why this task is suitable or not for the current context]

Only recommend tasks that are suitable for the current context.
Make a decision keeping in mind the complexity of the task, the deadline of the task is not the only criteria. It can also be that the user can start on something but not finish it in the time they have now, but if it helps break the inertia of the task, it can be a good choice.
Keep a balance between completing easy tasks vs starting new complex tasks. We don't want to just recommend the easy tasks to tick boxes, but we also don't want the small tasks to get lost in the task list. Balance.
Only return the top two choices.`

// BuildPrompt renders the fixed instruction text, the user's context
// verbatim and every task in list order. Deterministic: same inputs,
// same string.
func BuildPrompt(list []tasks.Task, contextText string) string {
	var b strings.Builder

	b.WriteString(recommendationInstructions)
	b.WriteString("\n\nCurrent context: ")
	b.WriteString(contextText)
	b.WriteString("\n\nTasks:\n")

	for _, t := range list {
		b.WriteString("- Title: ")
		b.WriteString(t.Title)
		b.WriteString("\n  Details: ")
		b.WriteString(t.Details)
		b.WriteString("\n  Deadline: ")
		b.WriteString(t.Deadline)
		b.WriteString("\n  Complexity: ")
		b.WriteString(t.Complexity)
		b.WriteString("\n  Duration: ")
		b.WriteString(t.Duration.String())
		b.WriteString("\n")
	}

	return b.String()
}
