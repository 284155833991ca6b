package main

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"

	"github.com/omeyang/abckit/pkg/config/xconf"
	"github.com/omeyang/abckit/pkg/lifecycle/xrun"
	"github.com/omeyang/abckit/pkg/observability/xlog"
	"github.com/omeyang/abckit/pkg/remote/xredisexec"
	"github.com/omeyang/abckit/pkg/sampling/xbatch"
	"github.com/omeyang/abckit/pkg/sampling/xmulticore"
	"github.com/omeyang/abckit/pkg/sampling/xsampler"
	"github.com/omeyang/abckit/pkg/util/xid"
)

// createCommands 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createRunCommand(),
		createBatchCommand(),
		createWorkerCommand(),
	}
}

// setup 加载配置并初始化日志，所有子命令的公共前置步骤。
func setup(cmd *cli.Command) (*xconf.Config, *slog.Logger, error) {
	var cfg *xconf.Config
	var err error
	if path := cmd.String("config"); path != "" {
		cfg, err = xconf.Load(path)
	} else {
		cfg = xconf.Default()
	}
	if err != nil {
		return nil, nil, err
	}

	logger, err := xlog.Setup(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// createRunCommand 创建 run 子命令：本进程内执行一轮采样。
func createRunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "在本进程内执行一轮采样（内置演示模型）",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "n",
				Usage: "目标接受粒子数",
				Value: 100,
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "采样后端：multicore 或 single",
				Value: "multicore",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}

			opts := xsampler.Options{
				N:            cmd.Int("n"),
				SampleOne:    demoDraw,
				SimulEvalOne: demoEval,
			}

			var sampler xsampler.Sampler
			switch backend := cmd.String("backend"); backend {
			case "single":
				sampler = xsampler.NewSingleCore(xsampler.WithLogger(logger))
			case "multicore":
				workers := cfg.Multicore.Workers
				if workers == 0 {
					workers = runtime.NumCPU()
				}
				pool, err := xmulticore.NewPool(workers, xmulticore.WithLogger(logger))
				if err != nil {
					return err
				}
				sampler = pool
			default:
				return fmt.Errorf("unknown backend %q", backend)
			}

			return runRound(ctx, sampler, opts, logger)
		},
	}
}

// createBatchCommand 创建 batch 子命令：通过 Redis 批量执行器采样。
func createBatchCommand() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "通过 Redis 批量执行器执行一轮采样（需要 worker 进程）",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "n",
				Usage: "目标接受粒子数",
				Value: 100,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}

			rdb := redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer rdb.Close()

			client, err := xredisexec.NewClient(ctx, rdb, cfg.Redis.Cores,
				xredisexec.WithKeyPrefix(cfg.Redis.KeyPrefix),
				xredisexec.WithResultTTL(cfg.Redis.ResultTTL),
				xredisexec.WithLogger(logger),
			)
			if err != nil {
				return err
			}

			evalName := cfg.Batch.EvalName
			if evalName == "" {
				evalName = DemoEvalName
			}

			scheduler, err := xbatch.NewScheduler(client,
				xbatch.WithBatchSize(cfg.Batch.BatchSize),
				xbatch.WithMaxJobs(cfg.Batch.MaxJobs),
				xbatch.WithPollInterval(cfg.Batch.PollInterval),
				xbatch.WithEvalName(evalName),
				xbatch.WithLogger(logger),
			)
			if err != nil {
				return err
			}

			opts := xsampler.Options{
				N:            cmd.Int("n"),
				SampleOne:    demoDraw,
				SimulEvalOne: demoEval,
			}
			return runRound(ctx, scheduler, opts, logger)
		},
	}
}

// createWorkerCommand 创建 worker 子命令：消费 Redis 批次任务。
func createWorkerCommand() *cli.Command {
	return &cli.Command{
		Name:  "worker",
		Usage: "运行 Redis 队列 Worker，阻塞直到收到退出信号",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}

			// 配置热重载：运行时调整日志级别
			if path := cmd.String("config"); path != "" {
				w, err := xconf.Watch(path, func(newCfg *xconf.Config, err error) {
					if err != nil {
						logger.Warn("config reload failed", slog.Any("error", err))
						return
					}
					if err := xlog.SetLevel(newCfg.Log.Level); err != nil {
						logger.Warn("log level update failed", slog.Any("error", err))
						return
					}
					logger.Info("log level updated", slog.String("level", newCfg.Log.Level))
				})
				if err != nil {
					return err
				}
				defer w.Stop()
				w.StartAsync()
			}

			rdb := redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer rdb.Close()

			worker, err := xredisexec.NewWorker(rdb,
				xredisexec.WithWorkerKeyPrefix(cfg.Redis.KeyPrefix),
				xredisexec.WithWorkerResultTTL(cfg.Redis.ResultTTL),
				xredisexec.WithWorkerLogger(logger),
			)
			if err != nil {
				return err
			}

			return xrun.RunWithOptions(ctx,
				[]xrun.Option{
					xrun.WithName("abcctl-worker"),
					xrun.WithLogger(logger),
				},
				worker.Run,
			)
		},
	}
}

// runRound 执行一轮采样并输出结果摘要。
func runRound(ctx context.Context, sampler xsampler.Sampler, opts xsampler.Options, logger *slog.Logger) error {
	gen, err := xid.NewGenerator()
	if err != nil {
		return err
	}
	round, err := gen.NextRound()
	if err != nil {
		return err
	}

	log := logger.With(slog.String("round", round.String()))
	log.Info("round started", slog.Int("n", opts.N))

	res, err := sampler.SampleUntilNAccepted(ctx, opts)
	if err != nil {
		return err
	}

	pop := res.Sample.GetAcceptedPopulation()
	log.Info("round finished",
		slog.Int("accepted", pop.Len()),
		slog.Int("evaluations", res.Evaluations),
		slog.Float64("acceptance_rate", float64(pop.Len())/float64(res.Evaluations)),
	)

	fmt.Printf("accepted=%d evaluations=%d\n", pop.Len(), res.Evaluations)
	return nil
}
