package gmap

// Concat 合并多个 Map 为一个新 Map - 取所有 Map 的并集。
//
// 键冲突处理：
//   - 当多个 Map 中存在相同键时，后面的值会覆盖前面的值
//   - 总是返回空 Map 而非 nil，即使结果是空集合
//
// 模板绑定合并依赖该语义：调用方传入的绑定排在已存绑定之后，
// 因此同名键总是以调用方的值为准。
//
// 示例：
//
//	m := map[string]any{"a": 1, "b": 2}
//	Concat(m, nil)                    ⏩ map[string]any{"a": 1, "b": 2}
//	Concat(m, map[string]any{"c": 3}) ⏩ map[string]any{"a": 1, "b": 2, "c": 3}
//	Concat(m, map[string]any{"b": 9}) ⏩ map[string]any{"a": 1, "b": 9} // 后者覆盖前者
func Concat[K comparable, V any](ms ...map[K]V) map[K]V {
	// 快速路径：没有传入任何 Map，返回空 Map
	if len(ms) == 0 {
		return make(map[K]V)
	}

	n := 0
	for _, m := range ms {
		n += len(m)
	}

	ret := make(map[K]V, n)
	for _, m := range ms {
		for k, v := range m {
			ret[k] = v
		}
	}

	return ret
}

// Clone 返回 Map 的浅拷贝。
// nil 输入返回 nil，保持与原 Map 一致的判空语义。
func Clone[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}

	ret := make(map[K]V, len(m))
	for k, v := range m {
		ret[k] = v
	}

	return ret
}
