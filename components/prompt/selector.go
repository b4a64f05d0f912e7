package prompt

import (
	"context"

	"github.com/Igorprostoff/llama-index/components/model"
	"github.com/Igorprostoff/llama-index/schema"
)

// Conditional 选择器模板的一个条件分支。
type Conditional struct {
	// Condition 判断目标模型是否命中该分支。
	Condition func(llm model.LLM) bool

	// Template 命中时使用的模板。
	Template Template
}

// SelectorPromptTemplate 按目标模型选择底层模板的选择器。
//
// 持有一个默认模板与一组有序的条件分支，格式化时按列表顺序
// 线性扫描，取第一个命中分支的模板；未指定目标模型或无分支命中时
// 回退到默认模板。调用方可以针对特定模型定制措辞，同时始终有
// 安全的兜底模板。
//
// 只读元信息（占位符、绑定、元数据、输出解析器）均委托给默认模板，
// 条件分支的元信息不对外暴露。
type SelectorPromptTemplate struct {
	// defaultTemplate 兜底的默认模板。
	defaultTemplate Template

	// conditionals 有序的条件分支列表。
	conditionals []Conditional
}

// NewSelector 创建选择器模板。
func NewSelector(defaultTemplate Template, conditionals ...Conditional) *SelectorPromptTemplate {
	return &SelectorPromptTemplate{
		defaultTemplate: defaultTemplate,
		conditionals:    conditionals,
	}
}

// Select 返回目标模型对应的模板。
//
// llm 为 nil 时直接返回默认模板；否则按列表顺序求值条件函数，
// 首个命中分支生效，扫描即止；无命中时返回默认模板。
func (s *SelectorPromptTemplate) Select(llm model.LLM) Template {
	if llm == nil {
		return s.defaultTemplate
	}

	for _, conditional := range s.conditionals {
		if conditional.Condition != nil && conditional.Condition(llm) {
			return conditional.Template
		}
	}

	return s.defaultTemplate
}

// TemplateVars 委托返回默认模板的占位符列表。
func (s *SelectorPromptTemplate) TemplateVars() ([]string, error) {
	return s.defaultTemplate.TemplateVars()
}

// Kwargs 委托返回默认模板的已绑定关键字值副本。
func (s *SelectorPromptTemplate) Kwargs() map[string]any {
	return s.defaultTemplate.Kwargs()
}

// Metadata 委托返回默认模板的元信息。
func (s *SelectorPromptTemplate) Metadata() map[string]any {
	return s.defaultTemplate.Metadata()
}

// OutputParser 委托返回默认模板的输出解析器引用。
func (s *SelectorPromptTemplate) OutputParser() OutputParser {
	return s.defaultTemplate.OutputParser()
}

// PartialFormat 对默认模板和每个条件分支模板分别部分绑定，
// 返回由各自独立副本组成的新选择器。接收者不会被修改。
func (s *SelectorPromptTemplate) PartialFormat(kwargs map[string]any) Template {
	defaultTemplate := s.defaultTemplate.PartialFormat(kwargs)

	conditionals := make([]Conditional, len(s.conditionals))
	for i, conditional := range s.conditionals {
		conditionals[i] = Conditional{
			Condition: conditional.Condition,
			Template:  conditional.Template.PartialFormat(kwargs),
		}
	}

	return NewSelector(defaultTemplate, conditionals...)
}

// Format 选出目标模型对应的模板并渲染为字符串。
func (s *SelectorPromptTemplate) Format(ctx context.Context, llm model.LLM,
	vs map[string]any, opts ...Option) (string, error) {
	return s.Select(llm).Format(ctx, nil, vs, opts...)
}

// FormatMessages 选出目标模型对应的模板并渲染为消息列表。
func (s *SelectorPromptTemplate) FormatMessages(ctx context.Context, llm model.LLM,
	vs map[string]any, opts ...Option) ([]*schema.Message, error) {
	return s.Select(llm).FormatMessages(ctx, nil, vs, opts...)
}

// GetType 返回模板类型（"Selector"）。
//
// 用于组件的识别和调试。
func (s *SelectorPromptTemplate) GetType() string {
	return "Selector"
}
