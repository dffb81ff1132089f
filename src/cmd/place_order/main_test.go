package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Flag parse failures must reach main as errors so it can exit non-zero.
func TestRunCmdFlagErrors(t *testing.T) {
	t.Run("missing required flag surfaces an error", func(t *testing.T) {
		runCmd.SetArgs([]string{"--side", "BUY", "--type", "MARKET", "--quantity", "0.002"})

		err := runCmd.Execute()
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "symbol")
	})

	t.Run("unknown flag surfaces an error", func(t *testing.T) {
		runCmd.SetArgs([]string{"--bogus"})

		assert.NotNil(t, runCmd.Execute())
	})
}
