package prompt

import (
	"context"

	"github.com/Igorprostoff/llama-index/callbacks"
	"github.com/Igorprostoff/llama-index/components"
	"github.com/Igorprostoff/llama-index/components/model"
	"github.com/Igorprostoff/llama-index/internal/gmap"
	"github.com/Igorprostoff/llama-index/schema"
)

// ChatPromptTemplate 聊天提示词模板。
//
// 持有一组有序的消息模板，渲染时逐条替换占位符并保持顺序，
// 也可借助 MessagesToPrompt 协作函数展平为单个字符串。
type ChatPromptTemplate struct {
	// templates 消息模板的有序列表。
	templates []schema.MessagesTemplate

	config *templateConfig
}

// FromMessages 从给定的消息模板创建聊天提示词模板。
//
// 示例：
//
//	template := prompt.FromMessages([]schema.MessagesTemplate{
//		schema.SystemMessage("你是{persona}"),
//		schema.MessagesPlaceholder("history", true),
//		schema.UserMessage("{query}"),
//	})
//	msgs, err := template.FormatMessages(ctx, nil, map[string]any{
//		"persona": "一位乐于助人的助手",
//		"query":   "2+2 等于几？",
//	})
func FromMessages(templates []schema.MessagesTemplate, opts ...TemplateOption) *ChatPromptTemplate {
	copied := make([]schema.MessagesTemplate, len(templates))
	copy(copied, templates)

	return &ChatPromptTemplate{
		templates: copied,
		config:    newTemplateConfig(opts...),
	}
}

// TemplateVars 返回所有消息模板占位符的按序拼接。
//
// 对每条消息分别推导后按消息顺序连接，跨消息的重复占位符不去重。
func (t *ChatPromptTemplate) TemplateVars() ([]string, error) {
	var vars []string
	for _, template := range t.templates {
		vs, err := template.TemplateVars(t.config.formatType)
		if err != nil {
			return nil, err
		}
		vars = append(vars, vs...)
	}

	return vars, nil
}

// Kwargs 返回已绑定关键字值的副本。
func (t *ChatPromptTemplate) Kwargs() map[string]any {
	return gmap.Clone(t.config.kwargs)
}

// Metadata 返回模板元信息。
func (t *ChatPromptTemplate) Metadata() map[string]any {
	return map[string]any{metadataKeyPromptType: t.config.promptType}
}

// OutputParser 返回构造时附加的输出解析器引用。
func (t *ChatPromptTemplate) OutputParser() OutputParser {
	return t.config.outputParser
}

// PartialFormat 返回合并了给定绑定的全新模板副本。
//
// 只更新绑定映射，消息模板本身不在此时被改写；
// 消息列表独立复制，接收者与副本互不影响。
func (t *ChatPromptTemplate) PartialFormat(kwargs map[string]any) Template {
	copied := *t
	copied.templates = make([]schema.MessagesTemplate, len(t.templates))
	copy(copied.templates, t.templates)

	copiedConfig := *t.config
	copiedConfig.kwargs = gmap.Concat(t.config.kwargs, kwargs)
	copied.config = &copiedConfig

	return &copied
}

// Format 将聊天模板渲染并展平为单个提示词字符串。
//
// 先通过 FormatMessages 渲染出消息列表，
// 再交给 MessagesToPrompt 协作函数串联成字符串。
func (t *ChatPromptTemplate) Format(ctx context.Context, llm model.LLM,
	vs map[string]any, opts ...Option) (string, error) {
	msgs, err := t.FormatMessages(ctx, llm, vs, opts...)
	if err != nil {
		return "", err
	}

	return MessagesToPrompt(msgs), nil
}

// FormatMessages 使用给定的变量渲染聊天模板，生成消息列表。
//
// 该方法会：
//  1. 确保回调运行信息正确设置，触发 OnStart 回调
//  2. 按原始顺序逐条渲染消息模板
//  3. 如果发生错误，触发 OnError 回调
//  4. 成功后触发 OnEnd 回调，记录格式化结果
//
// FString 下绑定按消息过滤：每条消息只接收其自身占位符集合内的
// 绑定值，与某条消息无关的键不会泄漏给它，也不会对它产生错误；
// 而消息引用的占位符在合并后的绑定集中无值时，渲染失败。
// GoTemplate 与 Jinja2 消息完整接收合并后的绑定，循环变量等
// 块内名称不参与过滤，缺失键的处理交由各自引擎完成。
// 输出与输入模板一一对应，顺序一致；原模板不会被修改。
func (t *ChatPromptTemplate) FormatMessages(ctx context.Context, llm model.LLM,
	vs map[string]any, opts ...Option) (result []*schema.Message, err error) {
	_ = llm

	commonOptions := getCommonOptions(nil, opts...)

	// 设置回调运行信息，标识当前为提示词模板组件
	ctx = callbacks.EnsureRunInfo(ctx, t.GetType(), components.ComponentOfPrompt)
	if len(commonOptions.Handlers) > 0 {
		ctx = callbacks.AppendHandlers(ctx, &callbacks.RunInfo{
			Type:      t.GetType(),
			Component: components.ComponentOfPrompt,
		}, commonOptions.Handlers...)
	}

	// 触发 OnStart 回调，记录格式化开始和输入变量
	ctx = callbacks.OnStart(ctx, &CallbackInput{
		Variables: vs,
		Templates: t.templates,
	})

	defer func() {
		if err != nil {
			_ = callbacks.OnError(ctx, err)
		}
	}()

	all := gmap.Concat(t.config.kwargs, vs)

	result = make([]*schema.Message, 0, len(t.templates))

	for _, template := range t.templates {
		bindings := all

		if t.config.formatType == schema.FString {
			vars, verr := template.TemplateVars(t.config.formatType)
			if verr != nil {
				err = verr
				return nil, err
			}

			// 只保留该消息自身占位符集合内的绑定
			relevant := make(map[string]any, len(vars))
			for _, name := range vars {
				if v, ok := all[name]; ok {
					relevant[name] = v
				}
			}

			// 消息内容模板在替换前做缺失检查；占位符模板在 Format 内部自行校验
			if _, ok := template.(*schema.Message); ok {
				if err = checkTemplateVars(vars, all); err != nil {
					return nil, err
				}
			}

			bindings = relevant
		}

		msgs, ferr := template.Format(ctx, bindings, t.config.formatType)
		if ferr != nil {
			err = ferr
			return nil, err
		}

		result = append(result, msgs...)
	}

	// 触发 OnEnd 回调，记录格式化成功和结果
	ctx = callbacks.OnEnd(ctx, &CallbackOutput{
		Result:    result,
		Templates: t.templates,
	})

	return result, nil
}

// GetType 返回模板类型（"Chat"）。
//
// 用于组件的识别和调试。
func (t *ChatPromptTemplate) GetType() string {
	return "Chat"
}
