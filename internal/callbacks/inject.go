package callbacks

import (
	"context"

	"github.com/Igorprostoff/llama-index/components"
	"github.com/Igorprostoff/llama-index/internal/generic"
)

// InitCallbacks 初始化回调系统并创建上下文。
//
// 在组件执行开始时调用，用于设置回调处理器链并返回包含管理器的上下文
func InitCallbacks(ctx context.Context, info *RunInfo, handlers ...Handler) context.Context {
	mgr, ok := newManager(info, handlers...)
	if ok {
		return ctxWithManager(ctx, mgr)
	}

	// 没有处理器需要管理，存储空管理器到上下文中
	return ctxWithManager(ctx, nil)
}

// ReuseHandlers 复用现有回调处理器并更新运行信息。
//
// 在保持现有回调处理器链不变的情况下，仅更新运行信息并返回新的上下文
func ReuseHandlers(ctx context.Context, info *RunInfo) context.Context {
	cbm, ok := managerFromCtx(ctx)
	if !ok {
		return InitCallbacks(ctx, info)
	}

	return ctxWithManager(ctx, cbm.withRunInfo(info))
}

// EnsureRunInfo 确保上下文中包含有效的运行信息。
//
// 检查并确保上下文中的回调管理器包含完整的运行信息，必要时进行初始化或补充
func EnsureRunInfo(ctx context.Context, typ string, comp components.Component) context.Context {
	cbm, ok := managerFromCtx(ctx)
	if !ok {
		return InitCallbacks(ctx, &RunInfo{
			Type:      typ,
			Component: comp,
		})
	}

	if cbm.runInfo == nil {
		return ReuseHandlers(ctx, &RunInfo{
			Type:      typ,
			Component: comp,
		})
	}

	return ctx
}

// AppendHandlers 追加回调处理器到现有处理器链中。
//
// 在保持现有回调处理器的基础上，追加新的处理器并创建包含完整处理器链的新上下文。
func AppendHandlers(ctx context.Context, info *RunInfo, handlers ...Handler) context.Context {
	cbm, ok := managerFromCtx(ctx)
	if !ok {
		return InitCallbacks(ctx, info, handlers...)
	}

	nh := make([]Handler, len(cbm.handlers)+len(handlers))
	copy(nh[:len(cbm.handlers)], cbm.handlers)
	copy(nh[len(cbm.handlers):], handlers)

	return InitCallbacks(ctx, info, nh...)
}

// Handle 回调处理函数类型，泛型类型 T 表示输入输出数据的类型。
//
// 定义了执行回调处理的标准函数签名，支持类型安全的输入输出处理。
type Handle[T any] func(context.Context, T, *RunInfo, []Handler) (context.Context, T)

// On 执行指定时机的回调处理。
//
// 从上下文中获取回调管理器，根据时机过滤适用的处理器，并执行指定的回调处理函数。
func On[T any](ctx context.Context, inOut T, handle Handle[T], timing CallbackTiming, start bool) (context.Context, T) {
	mgr, ok := managerFromCtx(ctx)
	if !ok {
		return ctx, inOut
	}

	// 创建管理器副本以避免修改原始管理器
	nMgr := *mgr

	// 处理运行信息的获取和管理
	var info *RunInfo
	if start {
		// 开始状态：从管理器获取运行信息并清除管理器中的信息
		info = nMgr.runInfo
		nMgr.runInfo = nil
		ctx = context.WithValue(ctx, CtxRunInfoKey{}, info)
	} else {
		// 非开始状态：从管理器或上下文中获取运行信息
		if nMgr.runInfo != nil {
			info = nMgr.runInfo
		} else {
			info, _ = ctx.Value(CtxRunInfoKey{}).(*RunInfo)
		}
	}

	// 过滤适用于当前时机的处理器
	hs := make([]Handler, 0, len(nMgr.handlers)+len(nMgr.globalHandlers))
	for _, handler := range append(nMgr.handlers, nMgr.globalHandlers...) {
		timingChecker, ok_ := handler.(TimingChecker)
		if !ok_ || timingChecker.Needed(ctx, info, timing) {
			hs = append(hs, handler)
		}
	}

	var out T
	ctx, out = handle(ctx, inOut, info, hs)

	return ctxWithManager(ctx, &nMgr), out
}

// OnStartHandle 执行组件开始时的回调处理。
//
// 按照从后到前的顺序遍历处理器链，执行每个处理器的 OnStart 方法，
// 确保后注册的处理器先执行，实现类似栈的调用顺序。
func OnStartHandle[T any](ctx context.Context, input T, runInfo *RunInfo, handlers []Handler) (context.Context, T) {
	for _, handler := range generic.Reverse(handlers) {
		ctx = handler.OnStart(ctx, runInfo, input)
	}

	return ctx, input
}

// OnEndHandle 执行组件结束时的回调处理。
//
// 按照从前往后的顺序遍历处理器链，执行每个处理器的 OnEnd 方法，
// 确保先注册的处理器先执行，与 OnStartHandle 形成对称。
func OnEndHandle[T any](ctx context.Context, output T, runInfo *RunInfo, handlers []Handler) (context.Context, T) {
	for _, handler := range handlers {
		ctx = handler.OnEnd(ctx, runInfo, output)
	}

	return ctx, output
}

// OnErrorHandle 执行组件错误时的回调处理。
//
// 按照从前往后的顺序遍历处理器链，执行每个处理器的 OnError 方法，
// 确保错误信息能够被所有处理器捕获和处理。
func OnErrorHandle(ctx context.Context, err error,
	runInfo *RunInfo, handlers []Handler) (context.Context, error) {
	for _, handler := range handlers {
		ctx = handler.OnError(ctx, runInfo, err)
	}

	return ctx, err
}
