package langchain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	lcprompts "github.com/tmc/langchaingo/prompts"

	"github.com/Igorprostoff/llama-index/components/model"
	"github.com/Igorprostoff/llama-index/components/prompt"
	"github.com/Igorprostoff/llama-index/schema"
)

type fakeModel struct {
	typ string
}

func (m *fakeModel) GetType() string {
	return m.typ
}

func TestNewTemplateValidation(t *testing.T) {
	external := lcprompts.NewPromptTemplate("hello {{.name}}", []string{"name"})

	t.Run("模板与选择器都不给时报错", func(t *testing.T) {
		_, err := NewTemplate()
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("模板与选择器都给时报错", func(t *testing.T) {
		_, err := NewTemplate(
			WithTemplate(external),
			WithSelector(&Selector{Default: external}),
		)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("只给其中之一时成功", func(t *testing.T) {
		template, err := NewTemplate(WithTemplate(external))
		assert.NoError(t, err)
		assert.NotNil(t, template)

		template, err = NewTemplate(WithSelector(&Selector{Default: external}))
		assert.NoError(t, err)
		assert.NotNil(t, template)
	})
}

func TestTemplateFormat(t *testing.T) {
	ctx := context.Background()

	template, err := NewTemplate(WithTemplate(
		lcprompts.NewPromptTemplate("你好，{{.name}}", []string{"name"})))
	assert.NoError(t, err)

	out, err := template.Format(ctx, nil, map[string]any{"name": "世界"})
	assert.NoError(t, err)
	assert.Equal(t, "你好，世界", out)

	t.Run("占位符列表来自外部模板声明", func(t *testing.T) {
		vars, err := template.TemplateVars()
		assert.NoError(t, err)
		assert.Equal(t, []string{"name"}, vars)
	})

	t.Run("外部引擎的渲染错误原样透出", func(t *testing.T) {
		_, err := template.Format(ctx, nil, map[string]any{})
		assert.Error(t, err)
	})
}

func TestTemplateFormatMessages(t *testing.T) {
	ctx := context.Background()

	external := lcprompts.NewChatPromptTemplate([]lcprompts.MessageFormatter{
		lcprompts.NewSystemMessagePromptTemplate("You are {{.persona}}", []string{"persona"}),
		lcprompts.NewHumanMessagePromptTemplate("{{.query}}", []string{"query"}),
	})

	template, err := NewTemplate(WithTemplate(external))
	assert.NoError(t, err)

	msgs, err := template.FormatMessages(ctx, nil, map[string]any{
		"persona": "helpful",
		"query":   "2+2?",
	})
	assert.NoError(t, err)
	assert.Len(t, msgs, 2)
	// 外部角色在边界处翻译为本库角色
	assert.Equal(t, schema.System, msgs[0].Role)
	assert.Equal(t, "You are helpful", msgs[0].Content)
	assert.Equal(t, schema.User, msgs[1].Role)
	assert.Equal(t, "2+2?", msgs[1].Content)
}

func TestTemplatePartialFormat(t *testing.T) {
	ctx := context.Background()

	original, err := NewTemplate(WithTemplate(
		lcprompts.NewPromptTemplate("{{.persona}}：{{.query}}", []string{"persona", "query"})))
	assert.NoError(t, err)

	partial := original.PartialFormat(map[string]any{"persona": "助手"})

	t.Run("副本按合并后的绑定渲染", func(t *testing.T) {
		out, err := partial.Format(ctx, nil, map[string]any{"query": "你好"})
		assert.NoError(t, err)
		assert.Equal(t, "助手：你好", out)
		assert.Equal(t, map[string]any{"persona": "助手"}, partial.Kwargs())
	})

	t.Run("原模板不受影响", func(t *testing.T) {
		assert.Len(t, original.Kwargs(), 0)
		_, err := original.Format(ctx, nil, map[string]any{"query": "你好"})
		assert.Error(t, err)
	})

	t.Run("调用方绑定覆盖已存绑定", func(t *testing.T) {
		out, err := partial.Format(ctx, nil, map[string]any{
			"persona": "专家",
			"query":   "你好",
		})
		assert.NoError(t, err)
		assert.Equal(t, "专家：你好", out)
	})
}

func TestTemplateSelector(t *testing.T) {
	ctx := context.Background()

	defaultPrompt := lcprompts.NewPromptTemplate("默认：{{.query}}", []string{"query"})
	chatPrompt := lcprompts.NewPromptTemplate("对话：{{.query}}", []string{"query"})

	template, err := NewTemplate(WithSelector(&Selector{
		Default: defaultPrompt,
		Conditionals: []Conditional{
			{
				Condition: func(llm model.LLM) bool { return llm.GetType() == "chat" },
				Prompt:    chatPrompt,
			},
		},
	}))
	assert.NoError(t, err)

	vs := map[string]any{"query": "你好"}

	out, err := template.Format(ctx, nil, vs)
	assert.NoError(t, err)
	assert.Equal(t, "默认：你好", out)

	out, err = template.Format(ctx, &fakeModel{typ: "chat"}, vs)
	assert.NoError(t, err)
	assert.Equal(t, "对话：你好", out)

	t.Run("无分支命中时回退默认模板", func(t *testing.T) {
		out, err := template.Format(ctx, &fakeModel{typ: "embedding"}, vs)
		assert.NoError(t, err)
		assert.Equal(t, "默认：你好", out)
	})
}

func TestTemplateMetadata(t *testing.T) {
	external := lcprompts.NewPromptTemplate("{{.text}}", []string{"text"})

	template, err := NewTemplate(
		WithTemplate(external),
		WithPromptType(prompt.PromptTypeSummary),
	)
	assert.NoError(t, err)

	assert.Equal(t, map[string]any{"prompt_type": prompt.PromptTypeSummary}, template.Metadata())
	assert.Nil(t, template.OutputParser())
	assert.Equal(t, "Langchain", template.GetType())
}
