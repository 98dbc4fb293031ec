package migration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunner_StepsCreateEveryTable(t *testing.T) {
	r := NewRunner()
	assert.Equal(t, "1.0.0", r.Version())

	var all strings.Builder
	for _, s := range r.steps() {
		assert.NotEmpty(t, s.name)
		assert.Contains(t, s.sql, "IF NOT EXISTS")
		all.WriteString(s.sql)
	}
	for _, table := range []string{"diary_entries", "diary_comments", "ai_cache", "ai_logs"} {
		assert.Contains(t, all.String(), "CREATE TABLE IF NOT EXISTS "+table)
	}
}
