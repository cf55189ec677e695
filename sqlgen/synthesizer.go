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
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quadrantai/woqa/ai"
	"github.com/quadrantai/woqa/core"
	"github.com/quadrantai/woqa/examples"
	"github.com/quadrantai/woqa/knowledge"
)

// exampleHits is how many retrieval examples go into the prompt. The single
// closest example anchors the model without crowding out the rule block.
const exampleHits = 1

const synthesisPromptTemplate = `
You are an expert in generating accurate Azure SQL queries for work order related user questions.

### Schema:
Only use these exact table and column names, no spelling changes, no assumptions, no corrections, no hallucinations:
%s

### Abbreviations:
You may encounter these abbreviations in user queries. Always expand and interpret them correctly:
%s

Please use the following examples as reference to generate the SQL query:
%s

## Rules for Generating SQL Queries:
- Never use any data modifying or altering statements in SQL (such as INSERT, UPDATE, DELETE, DROP, ALTER, CREATE, etc.). Use only SELECT statements.
- If the user's question is a greeting (such as "hi", "hello", "good morning", etc.), respond ONLY with a friendly greeting message, and do NOT generate any SQL.
- Use only the tables and columns provided in the following database schema. Do not use or invent any other tables or columns.
- Do not modify the column names or data in any way.
- When no date specified use the current year %d.
- Always include 'WHERE IsActive = 1' for ALL tables that have this column.
- Always include 'WHERE IsCutout = ''' for ALL tables that have this column.
- Never display these columns to users: 'WorkActivityFunctionID', 'IsActive', 'IsDeleted'
- Always alias 'JointID' as 'WeldNumber'.
- For multi-row subqueries, use IN rather than '='

    **Transmission Database Specific Rules**:
        - **Work Order Queries**:
            - Always join TransmissionWorkOrder with TransmissionISO via TransmissionWorkOrderID
            - When querying by Work Order Number, use WorkOrderNo column
            - When querying by Work Order ID, use TransmissionWorkOrderID column

        - **Weld/Joint Queries**:
            - JointID in TransmissionISOMainJoint is the weld number
            - Always include both heat numbers (SegCompFieldID1 and SegCompFieldID2) when returning weld info
            - When joining to CompanyMTRFile:
                - FIRST try using SegCompField1MTRFileID/SegCompField2MTRFileID
                - If those are 0, fallback to SegCompFieldID1/SegCompFieldID2 (heat numbers). Always use 'HeatNumber' as the column name for heat numbers in CompanyMTRFile.
            - For Welds/Weld number queries, always include these columns JointID AS WeldNumber,SegCompFieldID1 AS HeatNumber1,SegCompFieldID2 AS HeatNumber2,SegCompField1MTRFileID,SegCompField2MTRFileID.
            - When the user asks about assets used for a weld number (JointID), do the following:
                - Always include these columns in the SELECT clause:
                    JointID AS WeldNumber,HeatNumber,AssetCategoryDescription AS AssetCategory,SubCategoryDescription AS AssetSubCategory,MaterialDescription AS Material,SizeDescription AS MaterialSize,ManufacturerName AS Manufacturer
                - When returning asset details for both SegCompField1 and SegCompField2:
                    - Use two separate SELECT statements joined with UNION ALL for clarity.
                    - Each SELECT should return the same columns and represent one asset (Asset 1 or Asset 2).
                - When joining to CompanyMTRFile:
                    - Use SegCompField1MTRFileID or SegCompField2MTRFileID when not 0
                    - If the MTRFileID = 0, fallback to matching using:
                        - RTRIM(LTRIM(SegCompFieldID1 or SegCompFieldID2)) IN (SELECT items FROM dbo.Split(cmf.HeatNumber, ';'))
                        - OR cmf.SerialNumber = RTRIM(LTRIM(SegCompFieldID1 or SegCompFieldID2))

        - **MTR File Queries**:
            - When joining CompanyMTRFile to master tables:
                - Use AssetCategoryMaster for category descriptions
                - Use SizeMaster for size descriptions
                - Use MaterialMaster for material descriptions
                - Use ManufacturerMaster for manufacturer descriptions

        - **Chemical/Mechanical Properties Queries**:
            1.When the user asks for chemical or mechanical properties for a heat number or serial number (e.g., "give me mechanical properties for heat no 723260y5"):
                - Always generate a query in the following format (replace the heat number as needed):
                  SELECT top 1 BinaryString
                  FROM CompanyMTRFile
                  WHERE ('<HEAT_NUMBER>' IN (SELECT items FROM dbo.Split(HeatNumber, ';'))
                  OR SerialNumber = '<HEAT_NUMBER>') AND IsActive = 1;
                - Use the provided heat number or serial number from the user question in place of <HEAT_NUMBER>.

           2.For user questions about the chemical or mechanical properties of a specific asset:
                - For these kind of questions, always consider the first row of the result set as asset1, next row as asset2, and so on.
                - Next get the HeatNumber or SerialNumber for that asset.
                - Then generate the same SQL query (as in 1), replacing <HEAT_NUMBER> accordingly.

## Output Format:
Your entire response MUST be ONLY the SQL query.
DO NOT include any introductory text, explanations, comments (unless they are part of the SQL query itself, e.g., in a WITH clause), or concluding remarks.
DO NOT wrap the SQL in markdown code blocks or any other formatting characters.
Start directly with the SQL query (e.g., 'SELECT' or 'WITH').
End directly with a semicolon.

User Question:
%s
SQL:
`

// Synthesizer generates a sanitized SQL statement for a question.
type Synthesizer struct {
	completer ai.Completer
	knowledge *knowledge.Knowledge
	searcher  *examples.Searcher
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer) error

// WithSearcher enables retrieval-example lookup. Without a searcher the
// prompt carries no reference examples.
func WithSearcher(searcher *examples.Searcher) Option {
	return func(s *Synthesizer) error {
		s.searcher = searcher
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithClock sets the time source used for the current-year rule.
// Default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Synthesizer) error {
		if now == nil {
			now = time.Now
		}
		s.now = now
		return nil
	}
}

// NewSynthesizer creates a new query synthesizer.
func NewSynthesizer(completer ai.Completer, kb *knowledge.Knowledge, opts ...Option) (*Synthesizer, error) {
	if completer == nil {
		return nil, ErrCompleterRequired
	}
	if kb == nil {
		return nil, ErrKnowledgeRequired
	}

	s := &Synthesizer{
		completer: completer,
		knowledge: kb,
		now:       time.Now,
		logger:    slog.Default().With("component", "query-synthesizer"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Synthesize generates a SQL statement for the question. The returned query
// carries the sanitized statement and the examples that informed it. A
// retrieval failure is logged and the prompt proceeds without examples; a
// completion failure is returned to the caller. Blank question text is sent
// to the model as-is.
func (s *Synthesizer) Synthesize(ctx context.Context, question *core.Question) (*core.GeneratedQuery, error) {
	if question == nil {
		return nil, ErrEmptyQuestion
	}

	var matches []*core.ExampleMatch
	if s.searcher != nil {
		var err error
		matches, err = s.searcher.Search(ctx, question.Text, exampleHits)
		if err != nil {
			s.logger.Warn("example retrieval failed, continuing without examples", "err", err)
			matches = nil
		}
	}

	prompt := s.buildPrompt(question, matches)
	response, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		s.logger.Error("query synthesis failed", "err", err)
		return nil, err
	}

	statement := EnforceReadOnly(Sanitize(response))
	s.logger.Debug("query synthesized", "statement", statement)

	return &core.GeneratedQuery{
		Statement: statement,
		Question:  *question,
		Examples:  examples.RenderBlock(matches),
	}, nil
}

func (s *Synthesizer) buildPrompt(question *core.Question, matches []*core.ExampleMatch) string {
	examplesSection := ""
	if block := examples.RenderBlock(matches); block != "" {
		examplesSection = fmt.Sprintf("\nReference examples from AI search:\n%s\n", block)
	}

	return fmt.Sprintf(synthesisPromptTemplate,
		s.knowledge.Schema(),
		s.knowledge.Glossary(),
		examplesSection,
		s.now().Year(),
		question.FullText())
}
