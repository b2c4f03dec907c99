package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/CodMac/ng-di-transform/model"
)

type JSONLWriter struct {
	encoder *json.Encoder
}

func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{
		encoder: json.NewEncoder(w),
	}
}

func (w *JSONLWriter) Write(v interface{}) error {
	return w.encoder.Encode(v)
}

// WriteOutcomes 每个文件一行，最后一行是汇总
func WriteOutcomes(w io.Writer, summary *model.Summary) (int, error) {
	writer := NewJSONLWriter(w)
	count := 0

	for _, outcome := range summary.Outcomes {
		if err := writer.Write(outcome); err != nil {
			return count, err
		}
		count++
	}

	total := struct {
		Kind string `json:"Kind"`
		model.RewriteStats
		Files     int `json:"Files"`
		Rewritten int `json:"Rewritten"`
		Unchanged int `json:"Unchanged"`
		Filtered  int `json:"Filtered"`
		Failed    int `json:"Failed"`
	}{
		Kind:         "SUMMARY",
		RewriteStats: summary.Totals,
		Files:        len(summary.Outcomes),
		Rewritten:    summary.Count(model.StatusRewritten),
		Unchanged:    summary.Count(model.StatusUnchanged),
		Filtered:     summary.Count(model.StatusFiltered),
		Failed:       summary.Count(model.StatusFailed),
	}
	if err := writer.Write(total); err != nil {
		return count, err
	}
	return count, nil
}

// ExportOutcomes 将运行结果写入 JSONL 文件，返回写入的文件结果条数
func ExportOutcomes(path string, summary *model.Summary) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	return writeAndClose(f, summary)
}

// writeAndClose 写入成功时返回关闭文件的错误
func writeAndClose(wc io.WriteCloser, summary *model.Summary) (n int, err error) {
	defer func() {
		if cerr := wc.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteOutcomes(wc, summary)
}
