package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEachFile_KeepsOrder(t *testing.T) {
	files := make([]string, 50)
	for i := range files {
		files[i] = fmt.Sprintf("f%02d.ts", i)
	}

	got, err := forEachFile(context.Background(), files, 4, func(p string) (string, error) {
		return strings.ToUpper(p), nil
	})
	require.NoError(t, err)
	require.Len(t, got, 50)
	assert.Equal(t, "F00.TS", got[0])
	assert.Equal(t, "F49.TS", got[49])
}

func TestForEachFile_EarliestErrorWins(t *testing.T) {
	var calls atomic.Int32
	files := []string{"a", "b", "c", "d"}

	_, err := forEachFile(context.Background(), files, 2, func(p string) (int, error) {
		calls.Add(1)
		if p == "b" || p == "d" {
			return 0, errors.New("bad " + p)
		}
		return 1, nil
	})
	assert.EqualError(t, err, "bad b")
	assert.Equal(t, int32(4), calls.Load(), "every file is still processed")
}

func TestForEachFile_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := forEachFile(ctx, []string{"a"}, 0, func(string) (int, error) { return 1, nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestForEachFile_Empty(t *testing.T) {
	got, err := forEachFile(context.Background(), nil, 0, func(string) (int, error) { return 1, nil })
	require.NoError(t, err)
	assert.Empty(t, got)
}
