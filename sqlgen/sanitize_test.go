package sqlgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	t.Run("strips sql code fence", func(t *testing.T) {
		in := "```sql\nSELECT * FROM TransmissionWorkOrder;\n```"
		assert.Equal(t, "SELECT * FROM TransmissionWorkOrder;", Sanitize(in))
	})

	t.Run("strips bare code fence", func(t *testing.T) {
		in := "```\nSELECT 1;\n```"
		assert.Equal(t, "SELECT 1;", Sanitize(in))
	})

	t.Run("strips stray backticks", func(t *testing.T) {
		in := "SELECT `WorkOrderNo` FROM TransmissionWorkOrder;"
		assert.Equal(t, "SELECT WorkOrderNo FROM TransmissionWorkOrder;", Sanitize(in))
	})

	t.Run("cuts leading prose", func(t *testing.T) {
		in := "Here is the query you asked for:\nSELECT COUNT(*) FROM TransmissionISO;"
		assert.Equal(t, "SELECT COUNT(*) FROM TransmissionISO;", Sanitize(in))
	})

	t.Run("cuts trailing prose after last semicolon", func(t *testing.T) {
		in := "SELECT 1;\nThis query returns a constant."
		assert.Equal(t, "SELECT 1;", Sanitize(in))
	})

	t.Run("keeps cte statements", func(t *testing.T) {
		in := "Sure!\nWITH welds AS (SELECT JointID FROM TransmissionISOMainJoint) SELECT * FROM welds;"
		assert.Equal(t, "WITH welds AS (SELECT JointID FROM TransmissionISOMainJoint) SELECT * FROM welds;", Sanitize(in))
	})

	t.Run("greeting response passes through", func(t *testing.T) {
		in := "Hello! How can I help you today?"
		assert.Equal(t, "Hello! How can I help you today?", Sanitize(in))
	})

	t.Run("idempotent", func(t *testing.T) {
		inputs := []string{
			"```sql\nSELECT * FROM CompanyMTRFile;\n```",
			"Some intro\nSELECT 1; trailing words",
			"SELECT TOP 1 BinaryString FROM CompanyMTRFile;",
			"hello there",
		}
		for _, in := range inputs {
			once := Sanitize(in)
			assert.Equal(t, once, Sanitize(once), "input: %q", in)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", Sanitize(""))
	})
}

func TestEnforceReadOnly(t *testing.T) {
	t.Run("select passes", func(t *testing.T) {
		sql := "SELECT * FROM TransmissionWorkOrder WHERE IsActive = 1;"
		assert.Equal(t, sql, EnforceReadOnly(sql))
	})

	t.Run("cte passes", func(t *testing.T) {
		sql := "WITH x AS (SELECT 1 AS n) SELECT n FROM x;"
		assert.Equal(t, sql, EnforceReadOnly(sql))
	})

	t.Run("mutating verbs are blanked", func(t *testing.T) {
		for _, sql := range []string{
			"DROP TABLE CompanyMTRFile;",
			"DELETE FROM TransmissionISO;",
			"update TransmissionWorkOrder set IsActive = 0;",
			"INSERT INTO ContractorMaster VALUES (1);",
			"TRUNCATE TABLE SizeMaster;",
		} {
			assert.Equal(t, "", EnforceReadOnly(sql), "input: %q", sql)
		}
	})

	t.Run("mutating tail statement blanks the whole response", func(t *testing.T) {
		sql := "SELECT 1; DROP TABLE CompanyMTRFile;"
		assert.Equal(t, "", EnforceReadOnly(sql))
	})

	t.Run("column named like a verb passes", func(t *testing.T) {
		sql := "SELECT UpdateCount FROM TransmissionISO;"
		assert.Equal(t, sql, EnforceReadOnly(sql))
	})
}
