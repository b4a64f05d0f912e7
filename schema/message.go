package schema

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"text/template"
	"text/template/parse"
	"unicode"

	"github.com/nikolalohinski/gonja"
	"github.com/nikolalohinski/gonja/config"
	"github.com/nikolalohinski/gonja/nodes"
	"github.com/nikolalohinski/gonja/parser"
	"github.com/slongfield/pyfmt"
)

// FormatType 消息模板的格式化类型。
type FormatType uint8

const (
	// FString Python 风格的字符串格式化 (PEP-3101)。
	// 由 pyfmt 库实现。
	FString FormatType = 0
	// GoTemplate Go 标准库的 text/template 格式化。
	GoTemplate FormatType = 1
	// Jinja2 Jinja2 模板格式化。
	// 由 gonja 库实现。
	Jinja2 FormatType = 2
)

// RoleType 消息角色类型。
type RoleType string

const (
	// Assistant 助手角色，表示消息由聊天模型返回。
	Assistant RoleType = "assistant"
	// User 用户角色，表示消息来自用户输入。
	User RoleType = "user"
	// System 系统角色，表示消息为系统消息。
	System RoleType = "system"
	// Tool 工具角色，表示消息为工具调用输出。
	Tool RoleType = "tool"
)

// Message 角色标记的消息。
//
// 既表示一条已渲染的对话消息，也可作为消息模板使用：
// Content 中的占位符会在 Format 时被替换，原消息不会被修改。
type Message struct {
	Role    RoleType `json:"role"`
	Content string   `json:"content"`

	// Name 消息名称。
	Name string `json:"name,omitempty"`

	// ToolCallID 工具调用 ID（仅用于 Tool 消息）。
	ToolCallID string `json:"tool_call_id,omitempty"`

	// Extra 额外信息存储。
	Extra map[string]any `json:"extra,omitempty"`
}

// String 返回消息的字符串表示。
//
// 使用示例：
//
//	msg := schema.UserMessage("hello world")
//	fmt.Println(msg.String()) // 输出: user: hello world
func (m *Message) String() string {
	sb := &strings.Builder{}
	sb.WriteString(fmt.Sprintf("%s: %s", m.Role, m.Content))
	if m.ToolCallID != "" {
		sb.WriteString(fmt.Sprintf("\ntool_call_id: %s", m.ToolCallID))
	}

	return sb.String()
}

// SystemMessage 创建系统消息。
func SystemMessage(content string) *Message {
	return &Message{
		Role:    System,
		Content: content,
	}
}

// AssistantMessage 创建助手消息。
func AssistantMessage(content string) *Message {
	return &Message{
		Role:    Assistant,
		Content: content,
	}
}

// UserMessage 创建用户消息。
func UserMessage(content string) *Message {
	return &Message{
		Role:    User,
		Content: content,
	}
}

// ToolMessage 创建工具消息。
func ToolMessage(content string, toolCallID string) *Message {
	return &Message{
		Role:       Tool,
		Content:    content,
		ToolCallID: toolCallID,
	}
}

var _ MessagesTemplate = &Message{}
var _ MessagesTemplate = MessagesPlaceholder("", false)

// MessagesTemplate 消息模板接口。
// 用于将模板渲染为消息列表。
//
// 使用示例：
//
//	chatTemplate := prompt.FromMessages([]schema.MessagesTemplate{
//		schema.SystemMessage("you are a {persona}"),
//		schema.MessagesPlaceholder("history", false), // 使用 params 中的 "history" 值
//	})
//	msgs, err := chatTemplate.FormatMessages(ctx, nil, params)
type MessagesTemplate interface {
	// Format 使用给定的变量渲染模板，返回消息列表。
	Format(ctx context.Context, vs map[string]any, formatType FormatType) ([]*Message, error)

	// TemplateVars 返回模板引用的占位符名称列表，按首次出现顺序排列。
	TemplateVars(formatType FormatType) ([]string, error)
}

// messagesPlaceholder 消息占位符实现。
type messagesPlaceholder struct {
	key      string // 参数键名。
	optional bool   // 是否可选。
}

// MessagesPlaceholder 创建消息占位符。
// 将占位符渲染为参数中的消息列表，常用于注入对话历史。
//
// 使用示例：
//
//	placeholder := MessagesPlaceholder("history", false)
//	params := map[string]any{
//		"history": []*schema.Message{{Role: "user", Content: "what is a prompt?"}},
//		"query":   "how to use templates?",
//	}
//	msgs, err := placeholder.Format(ctx, params, schema.FString) // 返回 params 中 "history" 的值
func MessagesPlaceholder(key string, optional bool) MessagesTemplate {
	return &messagesPlaceholder{
		key:      key,
		optional: optional,
	}
}

// Format 返回指定键对应的消息列表。
// 因为这是占位符，所以直接返回参数中的消息。
func (p *messagesPlaceholder) Format(_ context.Context, vs map[string]any, _ FormatType) ([]*Message, error) {
	v, ok := vs[p.key]
	if !ok {
		if p.optional {
			return []*Message{}, nil
		}

		return nil, fmt.Errorf("message placeholder format: %s not found", p.key)
	}

	msgs, ok := v.([]*Message)
	if !ok {
		return nil, fmt.Errorf("only messages can be used to format message placeholder, key: %v, actual type: %v", p.key, reflect.TypeOf(v))
	}

	return msgs, nil
}

// TemplateVars 返回占位符引用的参数键。
func (p *messagesPlaceholder) TemplateVars(_ FormatType) ([]string, error) {
	return []string{p.key}, nil
}

// Format 根据指定格式类型渲染消息并返回。
// 渲染结果是消息的副本，原消息模板不会被修改。
//
// 使用示例：
//
//	msg := schema.UserMessage("hello world, {name}")
//	msgs, err := msg.Format(ctx, map[string]any{"name": "bob"}, schema.FString)
//	// msgs[0].Content 将是 "hello world, bob"
func (m *Message) Format(_ context.Context, vs map[string]any, formatType FormatType) ([]*Message, error) {
	c, err := FormatContent(m.Content, vs, formatType)
	if err != nil {
		return nil, err
	}

	copied := *m
	copied.Content = c

	return []*Message{&copied}, nil
}

// TemplateVars 返回消息内容引用的占位符名称列表。
func (m *Message) TemplateVars(formatType FormatType) ([]string, error) {
	return TemplateVars(m.Content, formatType)
}

// FormatContent 根据格式化类型格式化内容字符串。
func FormatContent(content string, vs map[string]any, formatType FormatType) (string, error) {
	switch formatType {
	case FString:
		return pyfmt.Fmt(content, vs)
	case GoTemplate:
		parsedTmpl, err := template.New("template").
			Option("missingkey=error").
			Parse(content)
		if err != nil {
			return "", err
		}
		sb := new(strings.Builder)
		err = parsedTmpl.Execute(sb, vs)
		if err != nil {
			return "", err
		}
		return sb.String(), nil
	case Jinja2:
		env, err := getJinjaEnv()
		if err != nil {
			return "", err
		}
		tpl, err := env.FromString(content)
		if err != nil {
			return "", err
		}
		out, err := tpl.Execute(vs)
		if err != nil {
			return "", err
		}
		return out, nil
	default:
		return "", fmt.Errorf("unknown format type: %v", formatType)
	}
}

// TemplateVars 返回模板字符串按指定格式类型引用的占位符名称列表。
//
// 结果按首次出现顺序排列，同一占位符出现多次时重复出现。
// 不含占位符的字符串返回空列表，不会报错。
// FString 下双写的花括号表示字面量，不会被识别为占位符。
func TemplateVars(content string, formatType FormatType) ([]string, error) {
	switch formatType {
	case FString:
		return fStringVars(content), nil
	case GoTemplate:
		return goTemplateVars(content)
	case Jinja2:
		return jinja2Vars(content), nil
	default:
		return nil, fmt.Errorf("unknown format type: %v", formatType)
	}
}

// fStringVars 提取 FString 模板中的占位符。
//
// 只识别形如 {name} 的良构占位符：
//   - "{{" 与 "}}" 是转义的字面量花括号，跳过
//   - 格式说明（{name:>8}）、转换标记（{name!r}）与属性访问（{name.attr}）只取字段名
//   - 花括号之间不是合法标识符的内容（如 JSON 片段）不会被误认为占位符
//   - 未闭合的花括号按字面量处理，交由渲染阶段报错
func fStringVars(content string) []string {
	var vars []string

	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '{':
			if i+1 < len(content) && content[i+1] == '{' {
				i++
				continue
			}

			end := strings.IndexByte(content[i+1:], '}')
			if end < 0 {
				return vars
			}

			name := content[i+1 : i+1+end]
			if cut := strings.IndexAny(name, ":!.["); cut >= 0 {
				name = name[:cut]
			}
			if isIdentifier(name) {
				vars = append(vars, name)
			}

			i += end + 1
		case '}':
			if i+1 < len(content) && content[i+1] == '}' {
				i++
			}
		}
	}

	return vars
}

// isIdentifier 判断 s 是否为合法的占位符名称。
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}

	return true
}

// goTemplateVars 提取 GoTemplate 模板中引用的顶级字段名。
//
// range 与 with 会重绑定点号，其循环体/块体内的字段相对于被迭代的
// 元素取值，不计入顶级变量；if 不改变点号，分支体正常参与收集。
func goTemplateVars(content string) ([]string, error) {
	parsedTmpl, err := template.New("template").Parse(content)
	if err != nil {
		return nil, err
	}

	var vars []string
	collectTemplateFields(parsedTmpl.Tree.Root, &vars)

	return vars, nil
}

// collectTemplateFields 递归遍历模板解析树并收集字段引用。
func collectTemplateFields(node parse.Node, vars *[]string) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, item := range n.Nodes {
			collectTemplateFields(item, vars)
		}
	case *parse.ActionNode:
		collectPipeFields(n.Pipe, vars)
	case *parse.IfNode:
		collectBranchFields(&n.BranchNode, vars)
	case *parse.RangeNode:
		// 点号被重绑定，只收集 range 表达式本身引用的字段
		collectPipeFields(n.Pipe, vars)
	case *parse.WithNode:
		collectPipeFields(n.Pipe, vars)
	}
}

func collectBranchFields(n *parse.BranchNode, vars *[]string) {
	collectPipeFields(n.Pipe, vars)
	collectTemplateFields(n.List, vars)
	collectTemplateFields(n.ElseList, vars)
}

func collectPipeFields(pipe *parse.PipeNode, vars *[]string) {
	if pipe == nil {
		return
	}

	for _, cmd := range pipe.Cmds {
		for _, arg := range cmd.Args {
			if field, ok := arg.(*parse.FieldNode); ok && len(field.Ident) > 0 {
				*vars = append(*vars, field.Ident[0])
			}
		}
	}
}

// jinjaVarRe 匹配 Jinja2 变量表达式 {{ name }}，含过滤器时只取变量名。
var jinjaVarRe = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)[^}]*\}\}`)

// jinja2Vars 提取 Jinja2 模板中的变量名。
func jinja2Vars(content string) []string {
	var vars []string
	for _, m := range jinjaVarRe.FindAllStringSubmatch(content, -1) {
		vars = append(vars, m[1])
	}

	return vars
}

// jinjaEnvOnce 确保 jinja 环境只初始化一次。
var jinjaEnvOnce sync.Once

// jinjaEnv 自定义的 jinja 环境实例。
var jinjaEnv *gonja.Environment

// envInitErr jinja 环境初始化错误。
var envInitErr error

const (
	// jinjaInclude 禁用的 include 关键字。
	jinjaInclude = "include"
	// jinjaExtends 禁用的 extends 关键字。
	jinjaExtends = "extends"
	// jinjaImport 禁用的 import 关键字。
	jinjaImport = "import"
	// jinjaFrom 禁用的 from 关键字。
	jinjaFrom = "from"
)

// getJinjaEnv 获取自定义的 jinja 环境。
// 禁用了 include、extends、import、from 等不安全的关键字。
func getJinjaEnv() (*gonja.Environment, error) {
	jinjaEnvOnce.Do(func() {
		jinjaEnv = gonja.NewEnvironment(config.DefaultConfig, gonja.DefaultLoader)
		formatInitError := "init jinja env fail: %w"
		var err error
		if jinjaEnv.Statements.Exists(jinjaInclude) {
			err = jinjaEnv.Statements.Replace(jinjaInclude, func(parser *parser.Parser, args *parser.Parser) (nodes.Statement, error) {
				return nil, fmt.Errorf("keyword[include] has been disabled")
			})
			if err != nil {
				envInitErr = fmt.Errorf(formatInitError, err)
				return
			}
		}
		if jinjaEnv.Statements.Exists(jinjaExtends) {
			err = jinjaEnv.Statements.Replace(jinjaExtends, func(parser *parser.Parser, args *parser.Parser) (nodes.Statement, error) {
				return nil, fmt.Errorf("keyword[extends] has been disabled")
			})
			if err != nil {
				envInitErr = fmt.Errorf(formatInitError, err)
				return
			}
		}
		if jinjaEnv.Statements.Exists(jinjaFrom) {
			err = jinjaEnv.Statements.Replace(jinjaFrom, func(parser *parser.Parser, args *parser.Parser) (nodes.Statement, error) {
				return nil, fmt.Errorf("keyword[from] has been disabled")
			})
			if err != nil {
				envInitErr = fmt.Errorf(formatInitError, err)
				return
			}
		}
		if jinjaEnv.Statements.Exists(jinjaImport) {
			err = jinjaEnv.Statements.Replace(jinjaImport, func(parser *parser.Parser, args *parser.Parser) (nodes.Statement, error) {
				return nil, fmt.Errorf("keyword[import] has been disabled")
			})
			if err != nil {
				envInitErr = fmt.Errorf(formatInitError, err)
				return
			}
		}
	})
	return jinjaEnv, envInitErr
}
