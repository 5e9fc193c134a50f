package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no args", args: nil, want: DefaultQuery},
		{name: "blank arg", args: []string{"  "}, want: DefaultQuery},
		{name: "explicit", args: []string{"DELETE FROM t WHERE id=1"}, want: "DELETE FROM t WHERE id=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, queryFromArgs(tt.args))
		})
	}
}

func TestRootCommand_TooManyArgs(t *testing.T) {
	rootCmd.SetArgs([]string{"SELECT 1", "SELECT 2"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	assert.Error(t, rootCmd.Execute())
}
