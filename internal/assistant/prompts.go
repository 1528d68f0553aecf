package assistant

import (
	"fmt"
	"strings"

	"github.com/lverne/lapwise/internal/catalog"
)

// systemPrompt instructs the model for the requirement-gathering phase.
const systemPrompt = `You are an intelligent laptop shopping assistant. Your goal is to understand
the user's laptop needs across six dimensions: GPU intensity, display quality,
portability, multitasking, processing speed (each low, medium or high) and
budget (a number in USD).

Ask natural follow-up questions until you are confident about all six values.
Never guess a value the user has not implied. When you have all six, restate
them back to the user in one summary message.

Only discuss laptops and laptop shopping. Politely decline anything else.`

// greeting is the opening assistant message seeded into every fresh session.
const greeting = "Hello! I'm your laptop shopping assistant. Tell me what you'll use your laptop for and your budget, and I'll find the best match for you."

// gatherReminder is appended to every gathering-phase user message to keep
// the model on topic regardless of what the user wrote.
const gatherReminder = " Remember your system message and that you are an intelligent laptop assistant. So, you only help with questions around laptops."

// User-facing status messages. These go to the display log only, never into
// a model history.
const (
	msgFetching         = "Thank you for providing all the information. Kindly wait while I fetch the products."
	msgNoMatch          = "Sorry, we do not have laptops that match your requirements. Connecting you to a human expert. Please end this conversation."
	msgExtractionFailed = "Sorry, I could not process your requirements just now. Could you restate them in a sentence or two?"
)

// intentPrompt asks the model to judge whether an assistant reply contains a
// complete requirement summary. The answer space is Yes/No by construction.
const intentPrompt = `You evaluate an assistant message from a laptop sales conversation.
Answer "Yes" if the message states a value for ALL of: GPU intensity, display
quality, portability, multitasking, processing speed, and budget.
Answer "No" otherwise. Answer with exactly one word: Yes or No.

Assistant message:
%s`

// recoSystemPrompt builds the system message that seeds the recommendation
// history with the validated candidates.
func recoSystemPrompt(candidates []catalog.Candidate) string {
	var b strings.Builder
	b.WriteString("You are an intelligent laptop gadget expert. You help the user pick between the laptops below, and you only answer questions about them. Be concise and factual.\n\nRecommended laptops:\n")
	for i, c := range candidates {
		fmt.Fprintf(&b, "%d. %s %s — $%d. %s\n", i+1, c.Laptop.Brand, c.Laptop.Model, c.Laptop.Price, c.Laptop.Description)
	}
	b.WriteString("\nStart by presenting these laptops to the user with a one-line summary each.")
	return b.String()
}

// profileContext builds the synthetic user turn that carries the extracted
// requirement profile into the recommendation history.
func profileContext(req catalog.Requirements) string {
	return fmt.Sprintf(
		"This is my user profile: GPU intensity %s, display quality %s, portability %s, multitasking %s, processing speed %s, budget $%d.",
		req.GPUIntensity, req.DisplayQuality, req.Portability, req.Multitasking, req.ProcessingSpeed, req.Budget,
	)
}
