// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.TextGenerator and
// ai.Provider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	answer, err := mockProvider.TextGenerator().GenerateText(ctx, "test")
//
//	// Custom behavior injection
//	gen := mock.NewMockTextGenerator().
//	    WithGenerateTextFunc(func(ctx context.Context, prompt string) (string, error) {
//	        return "", nil
//	    })
//
//	// Check call counts
//	count := gen.CallCount()
//
// # Default Behavior
//
//   - MockTextGenerator: Returns a deterministic answer derived from the prompt length
//   - MockProvider: Wraps a mock generator
//   - NewUnconfiguredProvider: Reports no generator, as with a missing credential
package mock
