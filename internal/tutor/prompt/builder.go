package prompt

import (
	"fmt"
)

// Builder constructs prompts for the tutor
type Builder struct {
	system string
}

// NewBuilder creates a new prompt builder using the default tutor instruction
func NewBuilder() *Builder {
	return &Builder{system: SystemPromptTutor}
}

// NewBuilderWithSystem creates a builder with a custom system instruction
func NewBuilderWithSystem(system string) *Builder {
	return &Builder{system: system}
}

// BuildSystemPrompt returns the system instruction
func (b *Builder) BuildSystemPrompt() string {
	return b.system
}

// BuildUserPrompt formats the learner's question into the user turn
func (b *Builder) BuildUserPrompt(question string) string {
	return fmt.Sprintf(UserPromptTemplate, question)
}
