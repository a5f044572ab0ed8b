package remixer

import (
	"context"
	"errors"
	"strings"
)

// Result 是一次 remix 的产物。RemixedText 原样来自模型首个补全；
// ParsedItems 仅对列表型 mode 派生，属于便利字段。
type Result struct {
	RemixedText string
	Mode        string
	ParsedItems []string
}

// Remixer 负责把原文送给 LLM 并整理结果。无跨请求状态，可并发使用。
type Remixer struct {
	llm     LLMClient
	catalog Catalog
}

func New(llm LLMClient, catalog Catalog) (*Remixer, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if catalog == nil {
		return nil, errors.New("prompt catalog is required")
	}
	return &Remixer{llm: llm, catalog: catalog}, nil
}

// Modes lists the named modes of the active catalog.
func (r *Remixer) Modes() []string {
	return r.catalog.Modes()
}

// Remix resolves the prompt for mode, makes exactly one provider call, and
// returns the completion verbatim. No retries: a failed call is the caller's
// to report.
func (r *Remixer) Remix(ctx context.Context, text, mode string) (Result, error) {
	resolved := r.catalog.Resolve(mode)

	raw, err := r.llm.Complete(ctx, Prompt{
		System: resolved.System,
		User:   resolved.UserMessage(text),
	})
	if err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(raw) == "" {
		return Result{}, errors.New("model returned empty completion")
	}

	result := Result{RemixedText: raw, Mode: resolved.Mode}
	if resolved.ListOriented {
		result.ParsedItems = ParseNumberedItems(raw)
	}
	return result, nil
}
