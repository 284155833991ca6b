package xredisexec

import (
	"github.com/omeyang/abckit/pkg/remote/xexec"
	"github.com/omeyang/abckit/pkg/sampling/xsample"
)

// taskEnvelope 任务队列中的批次载荷。
type taskEnvelope struct {
	TaskID   string              `json:"task_id"`
	EvalName string              `json:"eval_name"`
	JobIDs   []int64             `json:"job_ids"`
	Params   []xsample.Parameter `json:"params"`
}

// resultEnvelope 结果键中的批次回执。
// Error 非空表示整个批次失败，Results 此时为空。
type resultEnvelope struct {
	TaskID  string            `json:"task_id"`
	Results []xexec.Evaluated `json:"results,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// =============================================================================
// 键命名
// =============================================================================

// DefaultKeyPrefix 所有键的默认前缀。
const DefaultKeyPrefix = "abckit:exec:"

type keySpace struct {
	prefix string
}

// queue 任务队列键（List，LPUSH/BRPOP）。
func (k keySpace) queue() string {
	return k.prefix + "queue"
}

// result 批次结果键（String，带 TTL）。
func (k keySpace) result(taskID string) string {
	return k.prefix + "result:" + taskID
}

// cancel 取消墓碑键（String，带 TTL）。
func (k keySpace) cancel(taskID string) string {
	return k.prefix + "cancel:" + taskID
}
