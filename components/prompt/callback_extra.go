package prompt

import (
	"github.com/Igorprostoff/llama-index/callbacks"
	"github.com/Igorprostoff/llama-index/schema"
)

// CallbackInput 提示词模板格式化开始时传递给回调处理器的输入。
type CallbackInput struct {
	// Variables 调用方传入的变量绑定。
	Variables map[string]any

	// Templates 参与本次格式化的消息模板列表。
	Templates []schema.MessagesTemplate

	// Extra 额外信息。
	Extra map[string]any
}

// CallbackOutput 提示词模板格式化结束时传递给回调处理器的输出。
type CallbackOutput struct {
	// Result 格式化生成的消息列表。
	Result []*schema.Message

	// Templates 参与本次格式化的消息模板列表。
	Templates []schema.MessagesTemplate

	// Extra 额外信息。
	Extra map[string]any
}

// ConvCallbackInput 将统一回调输入转换为提示词模板回调输入。
//
// 不是本组件的输入类型时返回 nil，回调处理器据此忽略无关事件。
func ConvCallbackInput(src callbacks.CallbackInput) *CallbackInput {
	switch t := src.(type) {
	case *CallbackInput:
		return t
	case map[string]any:
		return &CallbackInput{
			Variables: t,
		}
	default:
		return nil
	}
}

// ConvCallbackOutput 将统一回调输出转换为提示词模板回调输出。
func ConvCallbackOutput(src callbacks.CallbackOutput) *CallbackOutput {
	switch t := src.(type) {
	case *CallbackOutput:
		return t
	case []*schema.Message:
		return &CallbackOutput{
			Result: t,
		}
	default:
		return nil
	}
}
