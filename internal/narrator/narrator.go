// Package narrator wraps the text-to-speech collaborator. Speech is
// fire-and-forget: call sites log and ignore failures.
package narrator

import "context"

type Speaker interface {
	Speak(ctx context.Context, text, locale string) error
}

// Noop is the default speaker on platforms without a speech backend.
type Noop struct{}

func (Noop) Speak(context.Context, string, string) error { return nil }

// LocaleFor maps a settings language to a speech locale tag.
func LocaleFor(language string) string {
	if language == "tr" {
		return "tr-TR"
	}
	return "en-US"
}
