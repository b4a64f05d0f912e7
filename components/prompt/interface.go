package prompt

import (
	"context"

	"github.com/Igorprostoff/llama-index/components/model"
	"github.com/Igorprostoff/llama-index/schema"
)

var _ Template = &StringPromptTemplate{}
var _ Template = &ChatPromptTemplate{}
var _ Template = &SelectorPromptTemplate{}

// Template 提示词模板的统一契约。
//
// 四种模板变体（字符串、聊天、选择器、外部桥接）都满足该接口，
// 调用方只依赖这四个操作与只读元信息访问器，不关心底层实现。
//
// llm 参数是可选的目标模型描述（nil 表示未指定）：
// 字符串与聊天模板会忽略它，选择器模板用它挑选底层模板。
// 各变体保持同一签名，以便互相替换。
type Template interface {
	// TemplateVars 返回模板引用的占位符名称列表，按首次出现顺序排列。
	TemplateVars() ([]string, error)

	// Kwargs 返回已绑定关键字值的副本，修改返回值不影响模板。
	Kwargs() map[string]any

	// Metadata 返回模板元信息，含 "prompt_type" 分类标签。
	Metadata() map[string]any

	// OutputParser 返回构造时附加的输出解析器引用。
	// 本库只存储和透出该引用，不会调用它。
	OutputParser() OutputParser

	// PartialFormat 返回合并了给定绑定的全新模板副本。
	//
	// 同名键以新值为准；接收者保持不变，可以继续使用。
	PartialFormat(kwargs map[string]any) Template

	// Format 将模板渲染为字符串。
	//
	// 已存绑定与 vs 合并后替换占位符，冲突时以 vs 为准；
	// FString 下缺少绑定值的占位符导致格式化失败，其余引擎的
	// 缺失键处理交由引擎自身；多余的绑定键被忽略。
	Format(ctx context.Context, llm model.LLM, vs map[string]any, opts ...Option) (string, error)

	// FormatMessages 将模板渲染为角色消息列表。
	FormatMessages(ctx context.Context, llm model.LLM, vs map[string]any, opts ...Option) ([]*schema.Message, error)
}

// OutputParser 输出解析器引用。
//
// 生成结果的解析发生在本库之外；模板只负责携带解析器，
// 供下游在拿到模型输出后取用。
type OutputParser interface {
	// Parse 解析模型的原始输出。
	Parse(ctx context.Context, output string) (any, error)
}
