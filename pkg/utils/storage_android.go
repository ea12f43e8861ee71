//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PrepareStorage 确保 Android 上的 saves 目录存在并可写
//
// gdata 在 Android 上把数据写到 /data/data/{package}/saves，但不会预先创建该目录，
// 灯光状态和显示设置因此会在第一次保存时失败。
//
// 返回：
//   - string: saves 目录路径
//   - error: 无法识别包名或目录不可写
func PrepareStorage() (string, error) {
	pkg, err := androidPackage()
	if err != nil {
		return "", fmt.Errorf("failed to detect Android package: %w", err)
	}

	dir := filepath.Join("/data/data", pkg, "saves")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return "", fmt.Errorf("%s is not writable: %w", dir, err)
	}
	os.Remove(probe)
	return dir, nil
}

// androidPackage 从 /proc/self/cmdline 读取包名
func androidPackage() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}
	name := strings.Map(func(r rune) rune {
		if r == 0 || r == '\n' {
			return -1
		}
		return r
	}, string(data))
	if name == "" {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return name, nil
}
