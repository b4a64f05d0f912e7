package prompt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Igorprostoff/llama-index/callbacks"
	"github.com/Igorprostoff/llama-index/schema"
)

func TestChatTemplateFormatMessages(t *testing.T) {
	ctx := context.Background()

	template := FromMessages([]schema.MessagesTemplate{
		schema.SystemMessage("You are {persona}"),
		schema.UserMessage("{query}"),
	})

	t.Run("逐条消息按自身占位符取值", func(t *testing.T) {
		msgs, err := template.FormatMessages(ctx, nil, map[string]any{
			"persona": "helpful",
			"query":   "2+2?",
		})
		assert.NoError(t, err)
		assert.Len(t, msgs, 2)
		assert.Equal(t, schema.System, msgs[0].Role)
		assert.Equal(t, "You are helpful", msgs[0].Content)
		assert.Equal(t, schema.User, msgs[1].Role)
		assert.Equal(t, "2+2?", msgs[1].Content)
	})

	t.Run("无关的多余键不会引起错误", func(t *testing.T) {
		msgs, err := template.FormatMessages(ctx, nil, map[string]any{
			"persona": "helpful",
			"query":   "2+2?",
			"extra":   "x",
		})
		assert.NoError(t, err)
		assert.Len(t, msgs, 2)
	})

	t.Run("某条消息的占位符缺失时整体失败", func(t *testing.T) {
		_, err := template.FormatMessages(ctx, nil, map[string]any{"persona": "helpful"})
		assert.ErrorIs(t, err, ErrMissingTemplateVar)
		assert.ErrorContains(t, err, "query")
	})

	t.Run("原消息模板不被修改", func(t *testing.T) {
		_, err := template.FormatMessages(ctx, nil, map[string]any{
			"persona": "helpful",
			"query":   "2+2?",
		})
		assert.NoError(t, err)

		vars, err := template.TemplateVars()
		assert.NoError(t, err)
		assert.Equal(t, []string{"persona", "query"}, vars)
	})
}

func TestChatTemplateVars(t *testing.T) {
	template := FromMessages([]schema.MessagesTemplate{
		schema.SystemMessage("{a} {b}"),
		schema.UserMessage("{b} {c}"),
	})

	// 跨消息的重复占位符保留，不去重
	vars, err := template.TemplateVars()
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "b", "c"}, vars)
}

func TestChatTemplatePartialFormat(t *testing.T) {
	ctx := context.Background()

	original := FromMessages([]schema.MessagesTemplate{
		schema.SystemMessage("You are {persona}"),
		schema.UserMessage("{query}"),
	})

	partial := original.PartialFormat(map[string]any{"persona": "concise"})

	t.Run("原模板不受影响", func(t *testing.T) {
		assert.Len(t, original.Kwargs(), 0)
		_, err := original.FormatMessages(ctx, nil, map[string]any{"query": "hi"})
		assert.ErrorIs(t, err, ErrMissingTemplateVar)
	})

	t.Run("副本按合并后的绑定渲染", func(t *testing.T) {
		msgs, err := partial.FormatMessages(ctx, nil, map[string]any{"query": "hi"})
		assert.NoError(t, err)
		assert.Equal(t, "You are concise", msgs[0].Content)
		assert.Equal(t, "hi", msgs[1].Content)
	})
}

func TestChatTemplateFormatFlattens(t *testing.T) {
	ctx := context.Background()

	template := FromMessages([]schema.MessagesTemplate{
		schema.SystemMessage("You are {persona}"),
		schema.UserMessage("{query}"),
	})
	vs := map[string]any{"persona": "helpful", "query": "2+2?"}

	msgs, err := template.FormatMessages(ctx, nil, vs)
	assert.NoError(t, err)

	out, err := template.Format(ctx, nil, vs)
	assert.NoError(t, err)

	// Format 的输出与对 FormatMessages 的结果应用展平函数一致
	assert.Equal(t, MessagesToPrompt(msgs), out)
	assert.Equal(t, "system: You are helpful\nuser: 2+2?\nassistant: ", out)
}

func TestChatTemplateWithPlaceholder(t *testing.T) {
	ctx := context.Background()

	template := FromMessages([]schema.MessagesTemplate{
		schema.SystemMessage("You are a calculator"),
		schema.MessagesPlaceholder("history", false),
		schema.UserMessage("{query}"),
	})

	history := []*schema.Message{
		schema.UserMessage("1+1?"),
		schema.AssistantMessage("2"),
	}

	msgs, err := template.FormatMessages(ctx, nil, map[string]any{
		"history": history,
		"query":   "2+2?",
	})
	assert.NoError(t, err)
	assert.Len(t, msgs, 4)
	assert.Equal(t, history[0], msgs[1])
	assert.Equal(t, history[1], msgs[2])
	assert.Equal(t, "2+2?", msgs[3].Content)

	t.Run("必填历史缺失时失败", func(t *testing.T) {
		_, err := template.FormatMessages(ctx, nil, map[string]any{"query": "2+2?"})
		assert.Error(t, err)
	})
}

func TestChatTemplateBlockEngines(t *testing.T) {
	ctx := context.Background()

	t.Run("GoTemplate range 消息完整接收绑定", func(t *testing.T) {
		template := FromMessages([]schema.MessagesTemplate{
			schema.UserMessage("{{range .items}}{{.name}} {{end}}"),
		}, WithFormatType(schema.GoTemplate))

		msgs, err := template.FormatMessages(ctx, nil, map[string]any{
			"items": []map[string]any{{"name": "a"}, {"name": "b"}},
		})
		assert.NoError(t, err)
		assert.Equal(t, "a b ", msgs[0].Content)
	})

	t.Run("Jinja2 for 循环消息完整接收绑定", func(t *testing.T) {
		template := FromMessages([]schema.MessagesTemplate{
			schema.UserMessage("{% for x in xs %}{{ x }}{% endfor %}"),
		}, WithFormatType(schema.Jinja2))

		msgs, err := template.FormatMessages(ctx, nil, map[string]any{
			"xs": []string{"a", "b"},
		})
		assert.NoError(t, err)
		assert.Equal(t, "ab", msgs[0].Content)
	})
}

func TestChatTemplateCallbacks(t *testing.T) {
	ctx := context.Background()

	var startInput *CallbackInput
	var endOutput *CallbackOutput
	var gotErr error

	handler := callbacks.NewHandlerBuilder().
		OnStartFn(func(ctx context.Context, info *callbacks.RunInfo, input callbacks.CallbackInput) context.Context {
			startInput = ConvCallbackInput(input)
			return ctx
		}).
		OnEndFn(func(ctx context.Context, info *callbacks.RunInfo, output callbacks.CallbackOutput) context.Context {
			endOutput = ConvCallbackOutput(output)
			return ctx
		}).
		OnErrorFn(func(ctx context.Context, info *callbacks.RunInfo, err error) context.Context {
			gotErr = err
			return ctx
		}).
		Build()

	template := FromMessages([]schema.MessagesTemplate{
		schema.UserMessage("{query}"),
	})

	msgs, err := template.FormatMessages(ctx, nil, map[string]any{"query": "hello"},
		WithCallbacks(handler))
	assert.NoError(t, err)
	assert.NotNil(t, startInput)
	assert.Equal(t, map[string]any{"query": "hello"}, startInput.Variables)
	assert.NotNil(t, endOutput)
	assert.Equal(t, msgs, endOutput.Result)
	assert.Nil(t, gotErr)

	t.Run("格式化失败触发 OnError", func(t *testing.T) {
		_, err := template.FormatMessages(ctx, nil, map[string]any{},
			WithCallbacks(handler))
		assert.ErrorIs(t, err, ErrMissingTemplateVar)
		assert.ErrorIs(t, gotErr, ErrMissingTemplateVar)
	})
}

func TestChatTemplateComponentIdentity(t *testing.T) {
	template := FromMessages(nil)
	assert.Equal(t, "Chat", template.GetType())
}
