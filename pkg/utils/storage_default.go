//go:build !android

package utils

// PrepareStorage 在打开 gdata 之前准备存储目录
// 非 Android 平台由 gdata 自行创建目录，返回空路径
func PrepareStorage() (string, error) {
	return "", nil
}
