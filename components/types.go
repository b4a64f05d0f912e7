package components

// Component 表示库中不同类型的组件类型。
type Component string

const (
	// ComponentOfPrompt 提示词模板组件，用于动态生成和格式化提示词
	ComponentOfPrompt Component = "ChatTemplate"
)

// Typer 获取组件实现类型名称的接口。
//
// 实现了 Typer 接口的组件，其类型名称会出现在回调运行信息等展示场景中。
// 推荐类型名使用大驼峰格式，如 "String"、"Chat"、"Selector"。
type Typer interface {
	GetType() string
}
