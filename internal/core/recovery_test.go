package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type sourceFunc func(ctx context.Context) (Entry, error)

func (f sourceFunc) GenerateEntry(ctx context.Context) (Entry, error) { return f(ctx) }

func TestSafeGenerate_Passthrough(t *testing.T) {
	want := Entry{Features: []float64{1, 2}, Targets: []float64{0.1, 0.2}}
	got, err := SafeGenerate(context.Background(), sourceFunc(func(context.Context) (Entry, error) {
		return want, nil
	}), nil)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	boom := errors.New("boom")
	_, err = SafeGenerate(context.Background(), sourceFunc(func(context.Context) (Entry, error) {
		return Entry{}, boom
	}), nil)
	require.ErrorIs(t, err, boom)
}

func TestSafeGenerate_RecoversPanic(t *testing.T) {
	obs, logs := observer.New(zap.ErrorLevel)
	logger := zap.New(obs)

	got, err := SafeGenerate(context.Background(), sourceFunc(func(context.Context) (Entry, error) {
		panic("index out of range")
	}), logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index out of range")
	assert.Equal(t, Entry{}, got)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "entry generation panic", entry.Message)
	assert.Contains(t, entry.ContextMap(), "stack")
}
