package main

import (
	"math"
	"math/rand/v2"

	"github.com/omeyang/abckit/pkg/remote/xexec"
	"github.com/omeyang/abckit/pkg/sampling/xsample"
)

// DemoEvalName 内置演示模型在注册表中的名字。
// Worker 进程按此名字解析评估函数，调度侧用它走命名路径。
const DemoEvalName = "demo.gauss"

// demoEpsilon 演示模型的接受阈值。
const demoEpsilon = 0.5

func init() {
	xexec.MustRegister(DemoEvalName, demoEval)
}

// demoDraw 从先验 Uniform(-2, 2) 抽一个参数点。
func demoDraw() xsample.Parameter {
	return xsample.Parameter{"theta": rand.Float64()*4 - 2}
}

// demoEval 演示模型：x ~ Normal(theta, 1)，观测值为 0，
// 距离是 |x|，小于阈值则接受。
func demoEval(theta xsample.Parameter) (xsample.FullInfoParticle, error) {
	x := theta["theta"] + rand.NormFloat64()
	dist := math.Abs(x)
	return xsample.FullInfoParticle{
		Parameter: theta,
		Accepted:  dist < demoEpsilon,
		SumStats:  []xsample.SumStat{{"x": x}},
		Distances: []float64{dist},
	}, nil
}
