package prompt

import "github.com/Igorprostoff/llama-index/callbacks"

// Option 定义了模板格式化时的调用选项。
//
// 用于统一不同模板实现的选项类型，支持模板的扩展配置。
type Option struct {
	// handlers 本次调用附加的回调处理器。
	handlers []callbacks.Handler

	// implSpecificOptFn 存储实现特定的选项函数。
	implSpecificOptFn any
}

// options 所有模板实现共享的通用选项。
type options struct {
	// Handlers 本次调用附加的回调处理器。
	Handlers []callbacks.Handler
}

// WithCallbacks 为单次格式化调用附加回调处理器。
//
// 处理器在全局处理器之后执行，仅对本次调用生效。
func WithCallbacks(handlers ...callbacks.Handler) Option {
	return Option{
		handlers: handlers,
	}
}

// getCommonOptions 从选项列表中提取通用选项。
func getCommonOptions(base *options, opts ...Option) *options {
	if base == nil {
		base = &options{}
	}

	for i := range opts {
		opt := opts[i]
		if len(opt.handlers) > 0 {
			base.Handlers = append(base.Handlers, opt.handlers...)
		}
	}

	return base
}

// WrapImplSpecificOptFn 包装实现特定的选项函数。
//
// 类型参数：
//   - T: 实现特定的选项结构体类型
//
// 用于将实现特定的选项函数转换为统一的 Option 类型。
//
// 示例：
//
//	// 定义自定义选项结构体
//	type CustomTemplateOption struct {
//	    Culture string
//	}
//
//	// 提供选项函数
//	func WithCulture(culture string) Option {
//	    return WrapImplSpecificOptFn(func(o *CustomTemplateOption) {
//			o.Culture = culture
//		})
//	}
func WrapImplSpecificOptFn[T any](optFn func(*T)) Option {
	return Option{
		implSpecificOptFn: optFn,
	}
}

// GetImplSpecificOptions 从选项列表中提取实现特定的选项。
//
// 可以选择性地提供一个基础选项作为默认值。
// 主要用于模板实现的内部使用，在 Format 方法中解析自定义选项。
//
// 类型参数：
//   - T: 目标选项结构体类型
//
// 参数：
//   - base: 可选的基础选项，包含默认值
//   - opts: 要解析的 Option 列表
//
// 返回：
//   - *T: 提取了所有自定义选项的结构体实例
func GetImplSpecificOptions[T any](base *T, opts ...Option) *T {
	if base == nil {
		base = new(T)
	}

	for i := range opts {
		opt := opts[i]
		if opt.implSpecificOptFn != nil {
			s, ok := opt.implSpecificOptFn.(func(*T))
			if ok {
				s(base)
			}
		}
	}

	return base
}
