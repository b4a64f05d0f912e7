package prompt

// PromptType 提示词模板的分类标签。
//
// 自由形式的元信息标记，用于调试与展示场景，不影响模板行为。
type PromptType string

const (
	// PromptTypeCustom 自定义模板（默认值）
	PromptTypeCustom PromptType = "custom"
	// PromptTypeSummary 摘要生成模板
	PromptTypeSummary PromptType = "summary"
	// PromptTypeTreeInsert 树索引插入模板
	PromptTypeTreeInsert PromptType = "insert"
	// PromptTypeTreeSelect 树索引选择模板
	PromptTypeTreeSelect PromptType = "tree_select"
	// PromptTypeQuestionAnswer 问答模板
	PromptTypeQuestionAnswer PromptType = "text_qa"
	// PromptTypeRefine 答案精炼模板
	PromptTypeRefine PromptType = "refine"
	// PromptTypeKeywordExtract 关键词抽取模板
	PromptTypeKeywordExtract PromptType = "keyword_extract"
	// PromptTypeQueryKeywordExtract 查询关键词抽取模板
	PromptTypeQueryKeywordExtract PromptType = "query_keyword_extract"
	// PromptTypeTextToSQL 文本转 SQL 模板
	PromptTypeTextToSQL PromptType = "text_to_sql"
	// PromptTypeSimpleInput 简单输入模板
	PromptTypeSimpleInput PromptType = "simple_input"
)

// metadataKeyPromptType Metadata 中分类标签的键名。
const metadataKeyPromptType = "prompt_type"
