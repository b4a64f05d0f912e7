package prompt

import (
	"errors"
	"fmt"
)

// ErrMissingTemplateVar 模板占位符缺少绑定值。
//
// 合并已存绑定与调用方绑定后仍有占位符无值时返回，
// 调用方补齐缺失的绑定后可直接重试。
var ErrMissingTemplateVar = errors.New("missing value for template variable")

// checkTemplateVars 校验 vars 中的每个占位符在 vs 中都有绑定值。
//
// 在替换发生之前校验，保证格式化要么整体成功，要么原样失败，
// 不会产生部分替换的结果。多余的绑定键不视为错误。
func checkTemplateVars(vars []string, vs map[string]any) error {
	for _, name := range vars {
		if _, ok := vs[name]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingTemplateVar, name)
		}
	}

	return nil
}
