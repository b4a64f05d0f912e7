package model

// LLM 目标模型的最小描述接口。
//
// 提示词模板通过它感知"格式化结果将交给哪个模型消费"。
// 本库不读取描述对象的内部信息，仅将其透传给选择器的条件函数，
// 由条件函数决定是否针对该模型启用特定措辞的模板。
//
// 模型客户端本身（生成、流式等能力）不在本库范围内，
// 任何实现了 GetType 的模型句柄都可以直接作为 LLM 使用。
type LLM interface {
	// GetType 返回模型实现的类型名称。
	GetType() string
}
