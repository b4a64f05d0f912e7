package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Igorprostoff/llama-index/schema"
)

func TestConvPrompt(t *testing.T) {
	assert.NotNil(t, ConvCallbackInput(&CallbackInput{}))
	assert.NotNil(t, ConvCallbackInput(map[string]any{}))
	assert.Nil(t, ConvCallbackInput("asd"))

	assert.NotNil(t, ConvCallbackOutput(&CallbackOutput{}))
	assert.NotNil(t, ConvCallbackOutput([]*schema.Message{}))
	assert.Nil(t, ConvCallbackOutput("asd"))

	t.Run("变量映射被包装为回调输入", func(t *testing.T) {
		in := ConvCallbackInput(map[string]any{"query": "hi"})
		assert.Equal(t, map[string]any{"query": "hi"}, in.Variables)
	})

	t.Run("消息列表被包装为回调输出", func(t *testing.T) {
		msgs := []*schema.Message{schema.UserMessage("hi")}
		out := ConvCallbackOutput(msgs)
		assert.Equal(t, msgs, out.Result)
	})
}
