package relay

import (
	"os"

	// Packages
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// systemPrompt reads the prompt file. The file is read on every request so
// edits apply without a restart. A missing or unreadable file is logged and
// no system prompt is used.
func (s *Service) systemPrompt() string {
	if s.prompt == "" {
		return ""
	}
	data, err := os.ReadFile(s.prompt)
	if err != nil {
		s.log.Warn("system prompt not loaded", zap.String("path", s.prompt), zap.Error(err))
		return ""
	}
	return string(data)
}
