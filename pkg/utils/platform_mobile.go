//go:build mobile

package utils

// IsMobile 是否使用触屏操作，移动端编译时总是 true
func IsMobile() bool {
	return true
}
