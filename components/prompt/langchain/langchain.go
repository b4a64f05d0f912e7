// Package langchain 将 langchaingo 定义的提示词模板桥接为本库的模板契约。
//
// 核心模板包不依赖外部引擎的任何类型；所有 langchaingo 相关的
// 类型转换都被隔离在本包内，消息在边界处翻译为 schema.Message。
package langchain

import (
	"context"
	"errors"

	lcllms "github.com/tmc/langchaingo/llms"
	lcprompts "github.com/tmc/langchaingo/prompts"

	"github.com/Igorprostoff/llama-index/components/model"
	"github.com/Igorprostoff/llama-index/components/prompt"
	"github.com/Igorprostoff/llama-index/internal/gmap"
	"github.com/Igorprostoff/llama-index/schema"
)

var _ prompt.Template = &Template{}

// ErrInvalidConfig 模板与选择器二选一的约束被破坏。
//
// 构造时必须提供且只能提供 WithTemplate 或 WithSelector 之一。
var ErrInvalidConfig = errors.New("langchain template: must provide either template or selector")

// Conditional 选择器的一个条件分支，命中时使用对应的外部模板。
type Conditional struct {
	// Condition 判断目标模型是否命中该分支。
	Condition func(llm model.LLM) bool

	// Prompt 命中时使用的外部模板。
	Prompt lcprompts.FormatPrompter
}

// Selector 在多个外部模板之间按目标模型选择。
//
// 语义与 prompt.SelectorPromptTemplate 一致：按列表顺序线性扫描，
// 第一个命中分支生效，未指定目标模型或无命中时回退默认模板。
type Selector struct {
	// Default 兜底的默认外部模板。
	Default lcprompts.FormatPrompter

	// Conditionals 有序的条件分支列表。
	Conditionals []Conditional
}

// selectPrompt 返回目标模型对应的外部模板。
func (s *Selector) selectPrompt(llm model.LLM) lcprompts.FormatPrompter {
	if llm == nil {
		return s.Default
	}

	for _, conditional := range s.Conditionals {
		if conditional.Condition != nil && conditional.Condition(llm) {
			return conditional.Prompt
		}
	}

	return s.Default
}

// config 桥接模板的构造配置。
type config struct {
	template     lcprompts.FormatPrompter
	selector     *Selector
	promptType   prompt.PromptType
	outputParser prompt.OutputParser
}

// Option 桥接模板的构造选项函数类型。
type Option func(*config)

// WithTemplate 以单个外部模板构造，与 WithSelector 互斥。
func WithTemplate(template lcprompts.FormatPrompter) Option {
	return func(c *config) {
		c.template = template
	}
}

// WithSelector 以外部模板选择器构造，与 WithTemplate 互斥。
func WithSelector(selector *Selector) Option {
	return func(c *config) {
		c.selector = selector
	}
}

// WithPromptType 设置模板的分类标签。
func WithPromptType(promptType prompt.PromptType) Option {
	return func(c *config) {
		c.promptType = promptType
	}
}

// WithOutputParser 附加输出解析器引用，仅存储与透出。
func WithOutputParser(parser prompt.OutputParser) Option {
	return func(c *config) {
		c.outputParser = parser
	}
}

// Template 满足本库模板契约的 langchaingo 桥接模板。
//
// 渲染交给外部引擎完成；部分绑定以叠加映射的方式实现，
// 渲染时并入取值，外部模板对象从不被改写。
type Template struct {
	selector *Selector

	// partial 桥接层叠加的已绑定关键字值。
	partial map[string]any

	promptType   prompt.PromptType
	outputParser prompt.OutputParser
}

// NewTemplate 创建桥接模板。
//
// 必须提供且只能提供 WithTemplate 或 WithSelector 之一，
// 两者都给或都不给时返回 ErrInvalidConfig。
// 单个模板在内部被包装为只有默认分支的选择器。
func NewTemplate(opts ...Option) (*Template, error) {
	c := &config{
		promptType: prompt.PromptTypeCustom,
	}
	for _, opt := range opts {
		opt(c)
	}

	if (c.template == nil) == (c.selector == nil) {
		return nil, ErrInvalidConfig
	}

	selector := c.selector
	if selector == nil {
		selector = &Selector{Default: c.template}
	}

	return &Template{
		selector:     selector,
		partial:      map[string]any{},
		promptType:   c.promptType,
		outputParser: c.outputParser,
	}, nil
}

// TemplateVars 返回默认外部模板声明的输入变量列表。
func (t *Template) TemplateVars() ([]string, error) {
	return t.selector.Default.GetInputVariables(), nil
}

// Kwargs 返回桥接层已绑定关键字值的副本。
func (t *Template) Kwargs() map[string]any {
	return gmap.Clone(t.partial)
}

// Metadata 返回模板元信息。
func (t *Template) Metadata() map[string]any {
	return map[string]any{"prompt_type": t.promptType}
}

// OutputParser 返回构造时附加的输出解析器引用。
func (t *Template) OutputParser() prompt.OutputParser {
	return t.outputParser
}

// PartialFormat 返回合并了给定绑定的全新桥接模板副本。
//
// 绑定只记录在桥接层，外部模板对象不会被修改。
func (t *Template) PartialFormat(kwargs map[string]any) prompt.Template {
	copied := *t
	copied.partial = gmap.Concat(t.partial, kwargs)

	return &copied
}

// Format 选出目标模型对应的外部模板并渲染为字符串。
func (t *Template) Format(ctx context.Context, llm model.LLM,
	vs map[string]any, opts ...prompt.Option) (string, error) {
	promptValue, err := t.formatPrompt(llm, vs)
	if err != nil {
		return "", err
	}

	return promptValue.String(), nil
}

// FormatMessages 选出目标模型对应的外部模板，渲染后将
// 外部消息表示逐条翻译为本库的角色消息。
func (t *Template) FormatMessages(ctx context.Context, llm model.LLM,
	vs map[string]any, opts ...prompt.Option) ([]*schema.Message, error) {
	promptValue, err := t.formatPrompt(llm, vs)
	if err != nil {
		return nil, err
	}

	return fromLangchainMessages(promptValue.Messages()), nil
}

// formatPrompt 合并绑定并交给外部引擎渲染。
func (t *Template) formatPrompt(llm model.LLM, vs map[string]any) (lcllms.PromptValue, error) {
	selected := t.selector.selectPrompt(llm)
	values := gmap.Concat(t.partial, vs)

	return selected.FormatPrompt(values)
}

// GetType 返回模板类型（"Langchain"）。
//
// 用于组件的识别和调试。
func (t *Template) GetType() string {
	return "Langchain"
}

// fromLangchainMessages 将外部消息列表翻译为本库的角色消息列表。
//
// 角色映射：ai→assistant、human→user、system→system、tool→tool，
// 其余类型一律按用户消息处理。
func fromLangchainMessages(msgs []lcllms.ChatMessage) []*schema.Message {
	converted := make([]*schema.Message, 0, len(msgs))
	for _, msg := range msgs {
		switch msg.GetType() {
		case lcllms.ChatMessageTypeAI:
			converted = append(converted, schema.AssistantMessage(msg.GetContent()))
		case lcllms.ChatMessageTypeSystem:
			converted = append(converted, schema.SystemMessage(msg.GetContent()))
		case lcllms.ChatMessageTypeTool:
			converted = append(converted, schema.ToolMessage(msg.GetContent(), ""))
		default:
			converted = append(converted, schema.UserMessage(msg.GetContent()))
		}
	}

	return converted
}
