package remixer

import (
	"fmt"
	"strings"
)

// ResolvedPrompt is the outcome of a catalog lookup: the system instruction,
// how to build the user message from the source text, the canonical mode name
// after fallback, and whether the model output is a numbered list.
type ResolvedPrompt struct {
	Mode         string
	System       string
	ListOriented bool
	buildUser    func(text string) string
}

// UserMessage renders the user-side message for the given source text.
func (p ResolvedPrompt) UserMessage(text string) string {
	return p.buildUser(text)
}

// Catalog maps a requested mode to a prompt. Resolution is total: every mode,
// including unknown strings and the empty string, resolves to a non-empty
// instruction via the catalog's fallback.
type Catalog interface {
	Resolve(mode string) ResolvedPrompt
	// Modes lists the catalog's named modes, for the UI.
	Modes() []string
}

// NewCatalog returns the catalog for the configured shape, "tone" or
// "audience". The empty string selects "tone".
func NewCatalog(shape string) (Catalog, error) {
	switch shape {
	case "", "tone":
		return ToneCatalog{}, nil
	case "audience":
		return AudienceCatalog{}, nil
	default:
		return nil, fmt.Errorf("unknown catalog shape %q (want tone or audience)", shape)
	}
}

// --- Tone catalog ---

// ToneCatalog rewrites text in a named style. Modes professional, casual and
// funny are the named entries; any other non-empty tone is interpolated
// verbatim into the shared template, and only the empty tone falls back to
// professional.
type ToneCatalog struct{}

const toneSystemInstruction = "You are a helpful content remixing assistant."

func (ToneCatalog) Modes() []string {
	return []string{"professional", "casual", "funny"}
}

func (ToneCatalog) Resolve(mode string) ResolvedPrompt {
	tone := strings.ToLower(strings.TrimSpace(mode))
	if tone == "" {
		tone = "professional"
	}
	return ResolvedPrompt{
		Mode:   tone,
		System: toneSystemInstruction,
		buildUser: func(text string) string {
			return fmt.Sprintf("Rewrite the following text in a %s style: %q", tone, text)
		},
	}
}

// --- Audience catalog ---

// AudienceCatalog converts text into numbered posts for a target platform.
// Modes twitter and linkedin are recognized; anything else (including the
// empty mode) falls back to twitter. The instruction fully specifies the
// transformation, so the user message is the raw text.
type AudienceCatalog struct{}

func (AudienceCatalog) Modes() []string {
	return []string{"twitter", "linkedin"}
}

var audienceInstructions = map[string]string{
	"twitter": "You are a social media expert. Convert the content the user gives you " +
		"into at least 5 engaging tweets. Each tweet must be at most 280 characters. " +
		"Number each tweet (1., 2., 3., ...), one per line. Do not use hashtags or emoji.",
	"linkedin": "You are a social media expert. Convert the content the user gives you " +
		"into at least 3 LinkedIn posts. Each post must be between 100 and 1300 characters, " +
		"written in a professional but conversational voice. " +
		"Number each post (1., 2., 3., ...), one per line. Do not use hashtags or emoji.",
}

func (AudienceCatalog) Resolve(mode string) ResolvedPrompt {
	audience := strings.ToLower(strings.TrimSpace(mode))
	instruction, ok := audienceInstructions[audience]
	if !ok {
		audience = "twitter"
		instruction = audienceInstructions[audience]
	}
	return ResolvedPrompt{
		Mode:         audience,
		System:       instruction,
		ListOriented: true,
		buildUser: func(text string) string {
			return text
		},
	}
}
