// Package conv 提供类型转换、配置取值等泛型工具，用于简化各模块中的重复逻辑。
package conv

// ToInt 将 any 转为 int。
// 支持 int、int64、int32、float64、float32。
func ToInt(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case int32:
		return int(val), true
	case float64:
		return int(val), true
	case float32:
		return int(val), true
	default:
		return 0, false
	}
}

// ToString 将 any 转为 string。
// 仅支持 string 类型，否则返回 ("", false)。
func ToString(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// ConfigGet 从配置 map 中取 T 类型的值，缺失或类型不匹配时返回默认值。
func ConfigGet[T any](m map[string]any, key string, def T) T {
	if m == nil {
		return def
	}
	if v, ok := m[key]; ok {
		if t, ok := v.(T); ok {
			return t
		}
	}
	return def
}

// ConfigGetInt 从配置 map 中取整数值（YAML/JSON 反序列化可能给出 int 或 float64）。
func ConfigGetInt(m map[string]any, key string, def int) int {
	if m == nil {
		return def
	}
	if v, ok := m[key]; ok {
		if n, ok := ToInt(v); ok {
			return n
		}
	}
	return def
}

// SliceAnyToString 将 []any 转为 []string，非字符串元素被跳过。
func SliceAnyToString(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
