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


// Package storage provides the storage abstraction layer for supportai.
//
// This package defines the repository interface that decouples message
// persistence from the assistant pipeline, plus the byte encodings shared by
// backends.
//
// # Constructor Return Type Pattern
//
// Public constructors return interfaces to keep callers independent of the
// backend:
//
//	repo, err := badger.OpenMessageRepository(path)  // returns storage.MessageRepository
//
// Lower-level constructors that take a *badger.Backend return concrete types
// since callers sharing a backend already depend on the implementation.
//
// # Usage
//
// Create a repository instance:
//
//	repo, err := badger.OpenMessageRepository("/path/to/db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
// Use in tests with in-memory storage:
//
//	repo, err := badger.NewMemoryMessageRepository()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
