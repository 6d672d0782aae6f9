package usecase

import (
	"fmt"
	"regexp"

	"github.com/compozy/prwriter/internal/config"
)

// skipPattern matches "skip" bounded by non-word runes. RE2's \b only knows
// ASCII word characters, so the boundary is spelled out with Unicode classes.
var skipPattern = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])skip(?:[^\p{L}\p{N}_]|$)`)

// InstructionDecision is the outcome of resolving the user comment.
type InstructionDecision struct {
	CustomInstruction string
	Proceed           bool
	Reason            string
}

// ExtractCustomInstruction returns the rest of the line following "@botName".
// The mention is case-sensitive and must be followed by whitespace.
func ExtractCustomInstruction(botName, text string) string {
	if botName == "" || text == "" {
		return ""
	}
	re := regexp.MustCompile("@" + regexp.QuoteMeta(botName) + `\s+(.*)`)
	match := re.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return match[1]
}

// ContainsSkipInstruction reports whether text holds the word "skip" in any case.
func ContainsSkipInstruction(text string) bool {
	return skipPattern.MatchString(text)
}

// ResolveInstructionUseCase decides whether a run proceeds and with which custom instruction.
type ResolveInstructionUseCase struct{}

// Execute runs the use case.
func (uc *ResolveInstructionUseCase) Execute(event, botName, userMessage string) InstructionDecision {
	instruction := ExtractCustomInstruction(botName, userMessage)
	if instruction != "" && ContainsSkipInstruction(instruction) {
		return InstructionDecision{
			CustomInstruction: instruction,
			Reason:            "Exiting auto-pr-writer, user instruction contains the word 'skip'.",
		}
	}
	if event == config.EventPullRequest || (event == config.EventIssueComment && instruction != "") {
		return InstructionDecision{CustomInstruction: instruction, Proceed: true}
	}
	return InstructionDecision{
		CustomInstruction: instruction,
		Reason: fmt.Sprintf(
			"Exiting auto-pr-writer, event type is %s. auto-pr-writer runs for pull requests open/reopen "+
				"and comments on PRs with custom @%s instructions only",
			event, botName,
		),
	}
}
