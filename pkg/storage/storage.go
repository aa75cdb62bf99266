// Package storage 提供部落格文章目錄的共用功能
package storage

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// ErrDirNotSet 表示 storage.dir 設定為空
var ErrDirNotSet = errors.New("storage directory is not set")

// ErrNotDirectory 表示路徑存在但不是目錄
var ErrNotDirectory = errors.New("storage path is not a directory")

// Prepare 確保文章目錄存在
// 此函數會：
// 1. 建立目錄（包含缺少的上層目錄）
// 2. 確認該路徑確實是目錄
//
// 如果任何步驟失敗，會回傳錯誤，由呼叫方決定是否中止啟動
func Prepare(fsys afero.Fs, dir string) error {
	if dir == "" {
		return ErrDirNotSet
	}

	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("unable to create storage directory: %w", err)
	}

	return Check(fsys, dir)
}

// Check 確認文章目錄存在且可讀取，供健康檢查使用
func Check(fsys afero.Fs, dir string) error {
	info, err := fsys.Stat(dir)
	if err != nil {
		return fmt.Errorf("unable to stat storage directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}

	f, err := fsys.Open(dir)
	if err != nil {
		return fmt.Errorf("unable to open storage directory: %w", err)
	}
	defer f.Close()

	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("unable to read storage directory: %w", err)
	}

	return nil
}
