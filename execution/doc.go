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

// Package execution runs generated SQL against per-tenant databases.
//
// Every call opens a short-lived connection to the tenant's database, runs
// the single statement, materializes the full result set, and closes the
// connection. Nothing is pooled: questions are infrequent relative to
// connection cost, and tenants are isolated by database name, so a pool
// keyed per tenant would mostly hold idle connections.
package execution
