package callbacks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Igorprostoff/llama-index/internal/callbacks"
)

func TestAppendGlobalHandlers(t *testing.T) {
	// 测试前清空全局处理器列表，保证环境干净
	callbacks.GlobalHandlers = nil

	handler1 := NewHandlerBuilder().
		OnStartFn(func(ctx context.Context, info *RunInfo, input CallbackInput) context.Context {
			return ctx
		}).Build()

	handler2 := NewHandlerBuilder().
		OnEndFn(func(ctx context.Context, info *RunInfo, output CallbackOutput) context.Context {
			return ctx
		}).Build()

	AppendGlobalHandlers(handler1)
	assert.Equal(t, 1, len(callbacks.GlobalHandlers))
	assert.Contains(t, callbacks.GlobalHandlers, handler1)

	// 追加保留既有处理器
	AppendGlobalHandlers(handler2)
	assert.Equal(t, 2, len(callbacks.GlobalHandlers))
	assert.Contains(t, callbacks.GlobalHandlers, handler1)
	assert.Contains(t, callbacks.GlobalHandlers, handler2)

	AppendGlobalHandlers([]Handler{}...)
	assert.Equal(t, 2, len(callbacks.GlobalHandlers))
}

func TestHandlerBuilderTiming(t *testing.T) {
	onStartOnly := NewHandlerBuilder().
		OnStartFn(func(ctx context.Context, info *RunInfo, input CallbackInput) context.Context {
			return ctx
		}).Build()

	checker, ok := onStartOnly.(TimingChecker)
	assert.True(t, ok)
	assert.True(t, checker.Needed(context.Background(), nil, TimingOnStart))
	assert.False(t, checker.Needed(context.Background(), nil, TimingOnEnd))
	assert.False(t, checker.Needed(context.Background(), nil, TimingOnError))
}
