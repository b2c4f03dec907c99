package model

// FileStatus 是单个文件的处理结果
type FileStatus string

const (
	StatusFiltered  FileStatus = "FILTERED"  // 未通过 --scheme 过滤
	StatusUnchanged FileStatus = "UNCHANGED" // 已处理，无需修改
	StatusRewritten FileStatus = "REWRITTEN" // 至少改写了一个参数
	StatusFailed    FileStatus = "FAILED"    // 处理失败，已记录错误
)

// RewriteStats 统计一个文件内的改写情况
type RewriteStats struct {
	RewrittenParameters int `json:"RewrittenParameters"`
	RemovedConstructors int `json:"RemovedConstructors"`
	SkippedConstructors int `json:"SkippedConstructors"`
}

func (s *RewriteStats) Add(other *RewriteStats) {
	if other == nil {
		return
	}
	s.RewrittenParameters += other.RewrittenParameters
	s.RemovedConstructors += other.RemovedConstructors
	s.SkippedConstructors += other.SkippedConstructors
}

// FileOutcome 记录一个文件的处理结果，用于汇总与报告
type FileOutcome struct {
	FilePath string     `json:"FilePath"`
	Status   FileStatus `json:"Status"`
	Error    string     `json:"Error,omitempty"`
	RewriteStats
}

// Summary 汇总一次运行中所有文件的结果
type Summary struct {
	Outcomes []*FileOutcome
	Totals   RewriteStats
	counts   map[FileStatus]int
}

func NewSummary() *Summary {
	return &Summary{counts: make(map[FileStatus]int)}
}

// Record 登记一个文件的结果
func (s *Summary) Record(outcome *FileOutcome) {
	s.Outcomes = append(s.Outcomes, outcome)
	s.counts[outcome.Status]++
	s.Totals.Add(&outcome.RewriteStats)
}

// Count 返回某个状态的文件数
func (s *Summary) Count(status FileStatus) int {
	return s.counts[status]
}

// Failed 返回所有失败的结果
func (s *Summary) Failed() []*FileOutcome {
	var failed []*FileOutcome
	for _, o := range s.Outcomes {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}
