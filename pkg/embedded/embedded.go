// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包保存该文件系统，让其他包可以按 "data/..." 路径读取。
//
// 使用前必须调用 Init() 初始化。命令行工具可以传入 os.DirFS(".") 读取磁盘文件。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// ErrNotInitialized 在 Init() 之前访问资源
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var dataFS fs.FS

// Init 设置资源文件系统
// 必须在 main() 开始时、任何资源加载之前调用；传入 nil 恢复未初始化状态
func Init(data fs.FS) {
	dataFS = data
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return dataFS != nil
}

// cleanPath 标准化路径并检查前缀
func cleanPath(path string) (string, error) {
	if dataFS == nil {
		return "", ErrNotInitialized
	}

	// embed.FS 使用正斜杠，且不接受 "./" 前缀
	path = strings.TrimPrefix(filepath.ToSlash(path), "./")
	if !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// Open 打开资源文件，路径必须以 "data/" 开头
func Open(path string) (fs.File, error) {
	p, err := cleanPath(path)
	if err != nil {
		return nil, err
	}
	return dataFS.Open(p)
}

// ReadFile 读取资源文件内容，路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	p, err := cleanPath(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, p)
}

// Exists 检查资源文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 匹配资源文件，模式必须以 "data/" 开头
func Glob(pattern string) ([]string, error) {
	p, err := cleanPath(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(dataFS, p)
}

// ReadDir 读取资源目录内容
func ReadDir(path string) ([]fs.DirEntry, error) {
	p, err := cleanPath(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadDir(dataFS, p)
}
