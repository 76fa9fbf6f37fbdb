package folio

import "fmt"

// Fixed user-facing strings substituted when the provider yields nothing usable.
const (
	ApologyText        = "Sorry, something went wrong. Please try again."
	ChatFallbackText   = "I'm having trouble connecting right now."
	SearchFallbackText = "Could not find specific details."
)

// DefaultSuggestions is returned whenever structured suggestion output cannot
// be used. It always has exactly three entries.
var DefaultSuggestions = []string{
	"What are your projects?",
	"Tell me about your education",
	"Contact info",
}

// Persona describes whom the assistant represents.
type Persona struct {
	Name    string
	Profile string // knowledge base embedded in the system instruction
}

// Greeting is the model message every new session starts with.
func (p Persona) Greeting() string {
	return fmt.Sprintf("Hello! I am %s's AI assistant. How can I help you today?", p.Name)
}

// SystemInstruction builds the chat system instruction.
func (p Persona) SystemInstruction() string {
	return fmt.Sprintf(`You are %[1]s's personal AI Assistant. Your goal is to represent them professionally and accurately.
Use the following data to answer questions about %[1]s: %[2]s
Be friendly, concise, and helpful. If you don't know something for sure, offer to help the user contact %[1]s directly.`,
		p.Name, p.Profile)
}
