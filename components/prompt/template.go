package prompt

import (
	"context"

	"github.com/Igorprostoff/llama-index/components/model"
	"github.com/Igorprostoff/llama-index/internal/gmap"
	"github.com/Igorprostoff/llama-index/schema"
)

// templateConfig 模板构造时的公共配置。
type templateConfig struct {
	// formatType 模板字符串的格式化类型。
	formatType schema.FormatType
	// promptType 模板的分类标签。
	promptType PromptType
	// kwargs 构造时预先绑定的关键字值。
	kwargs map[string]any
	// outputParser 附加的输出解析器引用。
	outputParser OutputParser
}

// TemplateOption 模板构造选项函数类型。
type TemplateOption func(*templateConfig)

// WithFormatType 设置模板字符串的格式化类型。
// 默认为 schema.FString。
func WithFormatType(formatType schema.FormatType) TemplateOption {
	return func(c *templateConfig) {
		c.formatType = formatType
	}
}

// WithPromptType 设置模板的分类标签。
// 默认为 PromptTypeCustom。
func WithPromptType(promptType PromptType) TemplateOption {
	return func(c *templateConfig) {
		c.promptType = promptType
	}
}

// WithKwargs 设置构造时预先绑定的关键字值。
func WithKwargs(kwargs map[string]any) TemplateOption {
	return func(c *templateConfig) {
		c.kwargs = gmap.Clone(kwargs)
	}
}

// WithOutputParser 附加输出解析器引用。
// 模板只携带该引用供下游取用，不会调用它。
func WithOutputParser(parser OutputParser) TemplateOption {
	return func(c *templateConfig) {
		c.outputParser = parser
	}
}

// newTemplateConfig 应用选项并返回带默认值的配置。
func newTemplateConfig(opts ...TemplateOption) *templateConfig {
	config := &templateConfig{
		formatType: schema.FString,
		promptType: PromptTypeCustom,
	}
	for _, opt := range opts {
		opt(config)
	}
	if config.kwargs == nil {
		config.kwargs = map[string]any{}
	}

	return config
}

// StringPromptTemplate 单字符串提示词模板。
//
// 持有一个模板字符串与已绑定的关键字值，
// 可渲染为字符串或借助 PromptToMessages 协作函数渲染为单条消息。
type StringPromptTemplate struct {
	// template 模板字符串。
	template string

	config *templateConfig
}

// Prompt 是 StringPromptTemplate 的旧名别名。
//
// 仅为兼容尚未迁移的调用方保留，无任何行为差异。
type Prompt = StringPromptTemplate

// NewTemplate 从模板字符串创建字符串提示词模板。
//
// 示例：
//
//	template := prompt.NewTemplate("请用一句话概括：{text}")
//	out, err := template.Format(ctx, nil, map[string]any{"text": "..."})
func NewTemplate(template string, opts ...TemplateOption) *StringPromptTemplate {
	return &StringPromptTemplate{
		template: template,
		config:   newTemplateConfig(opts...),
	}
}

// TemplateVars 返回模板字符串引用的占位符名称列表。
// 每次调用基于当前模板文本重新推导。
func (t *StringPromptTemplate) TemplateVars() ([]string, error) {
	return schema.TemplateVars(t.template, t.config.formatType)
}

// Kwargs 返回已绑定关键字值的副本。
func (t *StringPromptTemplate) Kwargs() map[string]any {
	return gmap.Clone(t.config.kwargs)
}

// Metadata 返回模板元信息。
func (t *StringPromptTemplate) Metadata() map[string]any {
	return map[string]any{metadataKeyPromptType: t.config.promptType}
}

// OutputParser 返回构造时附加的输出解析器引用。
func (t *StringPromptTemplate) OutputParser() OutputParser {
	return t.config.outputParser
}

// PartialFormat 返回合并了给定绑定的全新模板副本。
//
// 接收者不会被修改；同名键以 kwargs 中的新值为准。
func (t *StringPromptTemplate) PartialFormat(kwargs map[string]any) Template {
	copied := *t
	copiedConfig := *t.config
	copiedConfig.kwargs = gmap.Concat(t.config.kwargs, kwargs)
	copied.config = &copiedConfig

	return &copied
}

// Format 将模板渲染为字符串。
//
// 已存绑定与 vs 合并（vs 优先）后替换模板中的占位符。
// FString 下任一占位符缺少绑定值时返回 ErrMissingTemplateVar，
// 不会产生部分替换的结果；多余的绑定键被忽略。
// GoTemplate 与 Jinja2 模板可含循环、条件等块结构，缺失键的
// 处理交由各自引擎完成，不做替换前校验。
// llm 参数与选择器契约保持一致，字符串模板不使用目标模型。
func (t *StringPromptTemplate) Format(ctx context.Context, llm model.LLM,
	vs map[string]any, opts ...Option) (string, error) {
	_ = llm
	_ = ctx

	all := gmap.Concat(t.config.kwargs, vs)

	if t.config.formatType == schema.FString {
		vars, err := t.TemplateVars()
		if err != nil {
			return "", err
		}
		if err = checkTemplateVars(vars, all); err != nil {
			return "", err
		}
	}

	return schema.FormatContent(t.template, all, t.config.formatType)
}

// FormatMessages 将模板渲染为单条消息。
//
// 先按 Format 渲染出字符串，再交给 PromptToMessages 协作函数包装。
func (t *StringPromptTemplate) FormatMessages(ctx context.Context, llm model.LLM,
	vs map[string]any, opts ...Option) ([]*schema.Message, error) {
	rendered, err := t.Format(ctx, llm, vs, opts...)
	if err != nil {
		return nil, err
	}

	return PromptToMessages(rendered), nil
}

// GetType 返回模板类型（"String"）。
//
// 用于组件的识别和调试。
func (t *StringPromptTemplate) GetType() string {
	return "String"
}
