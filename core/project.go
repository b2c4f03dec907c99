package core

import (
	"errors"
	"fmt"
	"os"
)

// Project 持有一次运行中加载的所有文件，运行结束时统一保存或丢弃
type Project struct {
	files []*FileContext
	index map[string]*FileContext
}

func NewProject() *Project {
	return &Project{index: make(map[string]*FileContext)}
}

// Add 登记一个文件；同一路径只保留第一次登记的上下文
func (p *Project) Add(fc *FileContext) {
	if _, ok := p.index[fc.FilePath]; ok {
		return
	}
	p.files = append(p.files, fc)
	p.index[fc.FilePath] = fc
}

func (p *Project) Files() []*FileContext {
	return p.files
}

func (p *Project) File(filePath string) (*FileContext, bool) {
	fc, ok := p.index[filePath]
	return fc, ok
}

// ModifiedFiles 返回内存中已被改写的文件路径
func (p *Project) ModifiedFiles() []string {
	var paths []string
	for _, fc := range p.files {
		if fc.Modified {
			paths = append(paths, fc.FilePath)
		}
	}
	return paths
}

// Save 将改写过的文件写回磁盘。dryRun 时只返回将被写入的路径。
func (p *Project) Save(dryRun bool) ([]string, error) {
	var written []string
	var errs []error
	for _, fc := range p.files {
		if !fc.Modified {
			continue
		}
		if dryRun {
			written = append(written, fc.FilePath)
			continue
		}
		if err := os.WriteFile(fc.FilePath, fc.Source, fc.mode); err != nil {
			errs = append(errs, fmt.Errorf("failed to write %s: %w", fc.FilePath, err))
			continue
		}
		written = append(written, fc.FilePath)
	}
	return written, errors.Join(errs...)
}

// Close 释放所有语法树
func (p *Project) Close() {
	for _, fc := range p.files {
		fc.Close()
	}
}
