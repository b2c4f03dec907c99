package collector

import (
	"fmt"

	"github.com/CodMac/ng-di-transform/core"
	"github.com/CodMac/ng-di-transform/model"
)

// Collector 用于从语法树收集类、构造函数与 import 信息。
type Collector interface {
	// Collect 遍历 fc.RootNode，重新填充 fc.Classes 与 fc.Imports。
	Collect(fc *core.FileContext) error
}

var collectorMap = make(map[model.Language]Collector)

// RegisterCollector 注册一个语言与其对应的 Collector
func RegisterCollector(lang model.Language, collector Collector) {
	collectorMap[lang] = collector
}

// GetCollector 根据语言类型获取对应的 Collector 实例。
func GetCollector(lang model.Language) (Collector, error) {
	collector, ok := collectorMap[lang]
	if !ok {
		return nil, fmt.Errorf("no collector registered for language: %s", lang)
	}

	return collector, nil
}
