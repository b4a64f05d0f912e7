package prompt

import (
	"fmt"
	"strings"

	"github.com/Igorprostoff/llama-index/schema"
)

// MessagesToPrompt 将消息列表展平为单个提示词字符串的协作函数。
//
// 默认实现逐条输出 "role: content" 行，并以空的助手行结尾，
// 提示模型在其后续写。需要其他串联格式的调用方可整体替换该函数。
var MessagesToPrompt = func(msgs []*schema.Message) string {
	lines := make([]string, 0, len(msgs)+1)
	for _, msg := range msgs {
		lines = append(lines, msg.String())
	}
	lines = append(lines, fmt.Sprintf("%s: ", schema.Assistant))

	return strings.Join(lines, "\n")
}

// PromptToMessages 将渲染完成的提示词字符串包装为消息列表的协作函数。
//
// 默认实现包装为单条用户消息。
var PromptToMessages = func(prompt string) []*schema.Message {
	return []*schema.Message{schema.UserMessage(prompt)}
}
