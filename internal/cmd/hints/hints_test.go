package hints

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/lingo/pkg/errors"
)

func TestHintString(t *testing.T) {
	assert.Equal(t, "💡 Do it", New("Do it").String())
	assert.Equal(t, "💡 Do it\n   Run: lingo sync", NewCommand("Do it", "lingo sync").String())
}

func TestSyncHints(t *testing.T) {
	tests := []struct {
		name string
		ctx  Context
		tags []string
	}{
		{
			name: "nothing to say",
			ctx:  Context{Command: "sync", Succeeded: true},
		},
		{
			name: "dry run with changes",
			ctx:  Context{Command: "sync", Succeeded: true, DryRun: true, Changed: 2},
			tags: []string{"next-step"},
		},
		{
			name: "fell back and mismatched",
			ctx:  Context{Command: "sync", Succeeded: true, FellBack: 3, Mismatches: 1},
			tags: []string{"translation", "mismatch"},
		},
		{
			name: "strict runs never suggest strict",
			ctx:  Context{Command: "sync", Succeeded: true, Strict: true, Mismatches: 1},
		},
		{
			name: "other commands",
			ctx:  Context{Command: "reconcile", Succeeded: true, FellBack: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Default().GetHints(tt.ctx)
			require.Len(t, got, len(tt.tags))
			for i, tag := range tt.tags {
				assert.True(t, got[i].HasTag(tag), "hint %d: %s", i, got[i])
			}
		})
	}
}

func TestErrorRecoveryHints(t *testing.T) {
	tests := []struct {
		name string
		err  error
		tag  string
	}{
		{"config", errors.NewConfigError("reference", "missing", nil), "setup"},
		{"read", errors.NewReadError("fr.json", os.ErrNotExist), "troubleshooting"},
		{"mismatch", fmt.Errorf("reconciling fr.json: %w", errors.NewShapeMismatchError("menu", "object", "string")), "mismatch"},
		{"rename", errors.NewRenameError("fr.json", "fr_old.json", os.ErrPermission), "recovery"},
		{"write", errors.NewWriteError("fr.json", os.ErrPermission), "recovery"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Default().GetHints(Context{Command: "sync", Err: tt.err})
			require.Len(t, got, 1)
			assert.True(t, got[0].HasTag(tt.tag))
		})
	}

	assert.Empty(t, Default().GetHints(Context{Command: "sync", Err: os.ErrClosed}))
}

func TestRegistryConfig(t *testing.T) {
	r := Default().WithConfig(RegistryConfig{Enabled: true, MaxHints: 1, ExcludeTags: []string{"translation"}})
	got := r.GetHints(Context{Command: "sync", Succeeded: true, DryRun: true, Changed: 1, FellBack: 1, Mismatches: 1})
	require.Len(t, got, 1)
	assert.True(t, got[0].HasTag("next-step"))

	disabled := Default().WithConfig(RegistryConfig{})
	assert.Empty(t, disabled.GetHints(Context{Command: "sync", Succeeded: true, FellBack: 1}))
}
