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

package execution

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyStatement is returned when there is no SQL to run.
	ErrEmptyStatement = errors.New("statement is empty")

	// ErrNoDatabase is returned when the tenant context names no database.
	ErrNoDatabase = errors.New("tenant database name is empty")
)

// Error wraps a failure from the database layer together with the statement
// that caused it, so callers can surface both in the answer envelope.
type Error struct {
	Statement string
	Stage     string // "connect", "query", or "scan"
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("sql execution failed (%s): %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
