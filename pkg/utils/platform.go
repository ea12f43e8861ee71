//go:build !mobile

package utils

import "os"

// TouchEmulateEnv 设置为 "1" 时桌面端也按触屏模式运行（用于本地调试触屏操作）
const TouchEmulateEnv = "RAVELIGHT_TOUCH"

// IsMobile 是否使用触屏操作
// 桌面端编译时只在设置了 TouchEmulateEnv 时返回 true
func IsMobile() bool {
	return os.Getenv(TouchEmulateEnv) == "1"
}
