package xexec

import (
	"fmt"
	"sync"

	"github.com/omeyang/abckit/pkg/sampling/xsampler"
)

// Registry 评估函数注册表。
// 命名传输路径下，client 只传函数名，worker 侧从注册表解析出
// 本地的评估函数执行。并发安全。
type Registry struct {
	mu    sync.RWMutex
	evals map[string]xsampler.EvalFunc
}

// NewRegistry 创建空注册表。
func NewRegistry() *Registry {
	return &Registry{evals: make(map[string]xsampler.EvalFunc)}
}

// Register 注册评估函数。名称重复时返回 ErrDuplicateEval。
func (r *Registry) Register(name string, fn xsampler.EvalFunc) error {
	if name == "" {
		return ErrEmptyName
	}
	if fn == nil {
		return ErrNilEval
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.evals[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateEval, name)
	}
	r.evals[name] = fn
	return nil
}

// Lookup 查找评估函数。
func (r *Registry) Lookup(name string) (xsampler.EvalFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.evals[name]
	return fn, ok
}

// Names 返回已注册的名称列表（顺序不定）。
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.evals))
	for name := range r.evals {
		names = append(names, name)
	}
	return names
}

// defaultRegistry 包级默认注册表。
// client 进程与 worker 进程各自在启动时注册同名函数。
var defaultRegistry = NewRegistry()

// Register 向默认注册表注册评估函数。
func Register(name string, fn xsampler.EvalFunc) error {
	return defaultRegistry.Register(name, fn)
}

// MustRegister 与 Register 相同，但失败时 panic。
// 适用于包 init 阶段的静态注册。
func MustRegister(name string, fn xsampler.EvalFunc) {
	if err := defaultRegistry.Register(name, fn); err != nil {
		panic(err)
	}
}

// Lookup 从默认注册表查找评估函数。
func Lookup(name string) (xsampler.EvalFunc, bool) {
	return defaultRegistry.Lookup(name)
}

// DefaultRegistry 返回默认注册表。
func DefaultRegistry() *Registry {
	return defaultRegistry
}
