package remixer

import (
	"context"
	"strings"
)

// MockLLM 一个简单的占位实现，便于本地调试，不调用外部模型。
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	// 直接把收到的提示词回显出来。
	var sb strings.Builder
	sb.WriteString("1. [mock] ")
	sb.WriteString(firstLine(prompt.User))
	sb.WriteString("\n2. [mock] system prompt was: ")
	sb.WriteString(firstLine(prompt.System))
	sb.WriteString("\n")
	return sb.String(), nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
