// Copyright 2025 Quadrant Analytics
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


package core

import (
	"fmt"
	"time"
)

// ValidateExample validates an Example according to domain rules.
//
// Validation rules:
//   - Content must not be empty
//   - InsertedAt must not be in the future
//
// NOT validated:
//   - Vector (can be empty until the seeder embeds it)
//   - ID (derived from content during seeding)
func ValidateExample(example *Example) error {
	if example == nil {
		return fmt.Errorf("%w: example is nil", ErrInvalidExample)
	}

	if example.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidExample, ErrEmptyContent)
	}

	if !example.InsertedAt.IsZero() && !IsValidTimestamp(example.InsertedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidExample, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateRole validates that a conversation turn role has a known value.
func ValidateRole(role Role) error {
	switch role {
	case RoleUser, RoleAssistant:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
}

// IsValidTimestamp reports whether a timestamp is not in the future.
// A small clock-skew allowance is applied.
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now().Add(time.Minute))
}
