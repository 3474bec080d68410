// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ai provides abstractions for the generative-language services used
// by the support assistant.
//
// Business logic depends on the TextGenerator and Provider interfaces rather
// than a concrete client, so the answer pipeline can be tested without network
// access.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//     (including the Gemini compatibility endpoint)
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewTextGenerator) return
// INTERFACE types. Test utility constructors (mock.NewMockTextGenerator)
// return CONCRETE types so tests can inject behavior and read call counts.
//
//	provider, err := openai.NewProvider(config)  // returns ai.Provider
//
//	gen := mock.NewMockTextGenerator()           // returns *mock.MockTextGenerator
//	gen.WithGenerateTextFunc(...)
//	count := gen.CallCount()
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	text, err := provider.TextGenerator().GenerateText(ctx, "What is your return policy?")
package ai
