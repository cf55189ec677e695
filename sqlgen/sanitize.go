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

package sqlgen

import (
	"regexp"
	"strings"
)

var (
	fencePattern     = regexp.MustCompile(`(?im)^` + "```" + `sql\s*|^` + "```" + `|` + "```" + `$`)
	statementPattern = regexp.MustCompile(`(?i)(select|with)\b`)
	leadingVerb      = regexp.MustCompile(`(?i)^\s*(insert|update|delete|drop|alter|create|truncate|merge|grant|revoke|exec|execute)\b`)
)

// Sanitize strips markdown framing and surrounding prose from a model
// response, leaving the bare SQL statement. It removes code fences and stray
// backticks, cuts everything before the first SELECT or WITH, and cuts
// everything after the last semicolon. Sanitizing an already-clean statement
// leaves it unchanged, so the function is safe to apply twice.
func Sanitize(sql string) string {
	sql = fencePattern.ReplaceAllString(sql, "")
	sql = strings.ReplaceAll(sql, "`", "")

	if loc := statementPattern.FindStringIndex(sql); loc != nil {
		sql = sql[loc[0]:]
	}
	if i := strings.LastIndex(sql, ";"); i >= 0 {
		sql = sql[:i+1]
	}
	return strings.TrimSpace(sql)
}

// EnforceReadOnly blanks out responses where any statement opens with a
// data-modifying verb. This is a keyword guard, not a SQL parser: the prompt
// already forbids mutation, and the executor rejects empty statements, so
// anything blanked here surfaces as an execution error.
func EnforceReadOnly(sql string) string {
	for _, statement := range strings.Split(sql, ";") {
		if leadingVerb.MatchString(statement) {
			return ""
		}
	}
	return sql
}
