package render

import (
	"strings"
	"sync"
)

// Notice is one validation message registered against a setting. Setting is
// the host's error slug, Code the machine-readable kind.
type Notice struct {
	Setting string `json:"setting"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Notices accumulates validation messages raised while sanitizing a
// submission so they can be shown next to the re-rendered form. The zero value
// is ready to use.
type Notices struct {
	mu      sync.Mutex
	entries []Notice
}

// AddError records a notice. Blank messages are ignored.
func (n *Notices) AddError(setting, code, message string) {
	if n == nil {
		return
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.entries = append(n.entries, Notice{
		Setting: strings.TrimSpace(setting),
		Code:    strings.TrimSpace(code),
		Message: message,
	})
}

// Errors returns a copy of every recorded notice in registration order.
func (n *Notices) Errors() []Notice {
	if n == nil {
		return nil
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.entries) == 0 {
		return nil
	}
	return append([]Notice(nil), n.entries...)
}

// ForSetting returns the notices registered against setting.
func (n *Notices) ForSetting(setting string) []Notice {
	var out []Notice
	for _, notice := range n.Errors() {
		if notice.Setting == setting {
			out = append(out, notice)
		}
	}
	return out
}

// Codes returns the notice codes in registration order, duplicates included.
func (n *Notices) Codes() []string {
	notices := n.Errors()
	if len(notices) == 0 {
		return nil
	}
	out := make([]string, 0, len(notices))
	for _, notice := range notices {
		out = append(out, notice.Code)
	}
	return out
}

// Messages returns the distinct messages ready for display.
func (n *Notices) Messages() []string {
	notices := n.Errors()
	messages := make([]string, 0, len(notices))
	for _, notice := range notices {
		messages = append(messages, notice.Message)
	}
	return normalizeMessages(messages)
}

// Len reports how many notices were recorded.
func (n *Notices) Len() int {
	if n == nil {
		return 0
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.entries)
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
