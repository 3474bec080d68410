package supportai

import "errors"

var (
	// ErrHarvesterRequired indicates a nil context source was passed to NewAssistant.
	ErrHarvesterRequired = errors.New("harvester is required")

	// ErrGeneratorRequired indicates a nil answer generator was passed to NewAssistant.
	ErrGeneratorRequired = errors.New("answer generator is required")

	// ErrInvalidPrompt indicates a prompt without a user or without content.
	ErrInvalidPrompt = errors.New("invalid prompt")

	// ErrHistoryUnavailable indicates the assistant has no message store.
	ErrHistoryUnavailable = errors.New("message history is not available")
)
