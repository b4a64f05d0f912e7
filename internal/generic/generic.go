package generic

// Reverse 返回元素顺序反转的新切片。
// 原切片不会被修改。
//
// 示例：
//
//	Reverse([]int{1, 2, 3}) ⏩ []int{3, 2, 1}
func Reverse[S ~[]E, E any](s S) S {
	if s == nil {
		return nil
	}

	ret := make(S, len(s))
	for i, e := range s {
		ret[len(s)-1-i] = e
	}

	return ret
}
