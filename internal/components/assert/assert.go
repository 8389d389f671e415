// Package assert holds constructor checks that panic on failure.
package assert

func NotNil(value any) {
	if value == nil {
		panic("assert: nil dependency")
	}
}

func NotEmptyStr(str string) {
	if str == "" {
		panic("assert: empty string")
	}
}

