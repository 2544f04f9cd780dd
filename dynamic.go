package promptrev

// DynamicValue produces a prompt value at lookup time. Dynamic values take
// precedence over stored templates and their results are returned without
// rendering.
type DynamicValue func() string

// StaticValue wraps a fixed string as a DynamicValue.
func StaticValue(v string) DynamicValue {
	return func() string { return v }
}
