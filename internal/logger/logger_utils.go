package logger

import (
	"sort"

	"github.com/rs/zerolog"
)

// RedactedEnv logs the keys of an environment map with every value masked.
type RedactedEnv struct {
	Env map[string]string
}

func (w RedactedEnv) MarshalZerologObject(e *zerolog.Event) {
	keys := make([]string, 0, len(w.Env))
	for key := range w.Env {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if w.Env[key] == "" {
			e.Str(key, "")
			continue
		}
		e.Str(key, "[REDACTED]")
	}
}

// FileList logs created paths under a single array field.
type FileList []string

func (l FileList) MarshalZerologArray(a *zerolog.Array) {
	for _, p := range l {
		a.Str(p)
	}
}
