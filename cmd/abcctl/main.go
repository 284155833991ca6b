// abcctl 是采样引擎的命令行入口。
//
// 用法:
//
//	abcctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config   配置文件路径（YAML/JSON），缺省使用内置默认值
//
// 命令:
//
//	run            在本进程内执行一轮采样（单核或多核后端）
//	batch          通过 Redis 批量执行器执行一轮采样
//	worker         运行 Redis 队列 Worker，消费批次任务
//	help           显示帮助信息
//
// 示例:
//
//	abcctl run --n 500                        # 多核后端跑内置演示模型
//	abcctl run --n 500 --backend single       # 单核基线
//	abcctl -c /etc/abckit/config.yaml batch --n 1000
//	abcctl -c /etc/abckit/config.yaml worker  # Worker 进程，Ctrl-C 优雅退出
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "abcctl",
		Usage:   "近似贝叶斯计算采样引擎命令行工具",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径（YAML/JSON）",
			},
		},
		Commands:       createCommands(),
		DefaultCommand: "help",
	}
}

func run() int {
	app := createApp()

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "abcctl:", err)
		return 1
	}
	return 0
}
