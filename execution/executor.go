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
	"context"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/quadrantai/woqa/core"
)

// Runner executes a statement against the tenant's database and returns the
// materialized results.
type Runner interface {
	Run(ctx context.Context, tenant core.TenantContext, statement string) (*core.ResultSet, error)
}

// Executor is the pgx-backed Runner.
type Executor struct {
	config *Config
	logger *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewExecutor creates an executor from server-level connection settings.
func NewExecutor(config *Config, opts ...Option) (*Executor, error) {
	if config == nil {
		config = DefaultConfig()
	}
	config.Normalize()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	e := &Executor{
		config: config,
		logger: slog.Default().With("component", "query-executor"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Run executes a single statement on the tenant's database. The connection
// lives for exactly one call. Zero rows is a successful result; the caller
// decides what an empty table means for the user.
func (e *Executor) Run(ctx context.Context, tenant core.TenantContext, statement string) (*core.ResultSet, error) {
	if strings.TrimSpace(statement) == "" {
		return nil, &Error{Statement: statement, Stage: "query", Err: ErrEmptyStatement}
	}
	if strings.TrimSpace(tenant.DatabaseName) == "" {
		return nil, &Error{Statement: statement, Stage: "connect", Err: ErrNoDatabase}
	}

	conn, err := pgx.Connect(ctx, e.config.connString(tenant.DatabaseName))
	if err != nil {
		e.logger.Error("database connection failed", "database", tenant.DatabaseName, "err", err)
		return nil, &Error{Statement: statement, Stage: "connect", Err: err}
	}
	defer conn.Close(ctx)

	e.logger.Debug("executing statement", "database", tenant.DatabaseName)

	rows, err := conn.Query(ctx, statement)
	if err != nil {
		return nil, &Error{Statement: statement, Stage: "query", Err: err}
	}
	defer rows.Close()

	result := &core.ResultSet{}
	for _, fd := range rows.FieldDescriptions() {
		result.Columns = append(result.Columns, string(fd.Name))
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, &Error{Statement: statement, Stage: "scan", Err: err}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, &Error{Statement: statement, Stage: "scan", Err: err}
	}

	e.logger.Debug("statement complete", "columns", len(result.Columns), "rows", len(result.Rows))
	return result, nil
}
