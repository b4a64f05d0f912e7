package callbacks

import (
	"context"

	"github.com/Igorprostoff/llama-index/components"
	"github.com/Igorprostoff/llama-index/internal/callbacks"
)

// EnsureRunInfo 确保上下文中包含指定组件类型的运行信息。
//
// 组件在执行入口处调用，缺少管理器或运行信息时按给定类型补齐。
func EnsureRunInfo(ctx context.Context, typ string, comp components.Component) context.Context {
	return callbacks.EnsureRunInfo(ctx, typ, comp)
}

// InitCallbacks 使用给定的运行信息和处理器初始化回调上下文。
//
// 会覆盖上下文中已有的处理器链，通常由最外层的调用方使用。
func InitCallbacks(ctx context.Context, info *RunInfo, handlers ...Handler) context.Context {
	return callbacks.InitCallbacks(ctx, info, handlers...)
}

// AppendHandlers 在保留现有处理器链的基础上追加处理器。
func AppendHandlers(ctx context.Context, info *RunInfo, handlers ...Handler) context.Context {
	return callbacks.AppendHandlers(ctx, info, handlers...)
}

// OnStart 触发组件开始执行时机的回调。
//
// 返回经处理器链加工后的上下文，组件应以返回值继续后续执行。
func OnStart[T any](ctx context.Context, input T) context.Context {
	ctx, _ = callbacks.On(ctx, input, callbacks.OnStartHandle[T], TimingOnStart, true)

	return ctx
}

// OnEnd 触发组件正常结束时机的回调。
func OnEnd[T any](ctx context.Context, output T) context.Context {
	ctx, _ = callbacks.On(ctx, output, callbacks.OnEndHandle[T], TimingOnEnd, false)

	return ctx
}

// OnError 触发组件执行出错时机的回调。
//
// 错误原样透传给每个处理器，返回值为加工后的上下文。
func OnError(ctx context.Context, err error) context.Context {
	ctx, _ = callbacks.On(ctx, err, callbacks.OnErrorHandle, TimingOnError, false)

	return ctx
}
