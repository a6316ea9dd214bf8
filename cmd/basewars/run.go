package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"BaseWars/internal/shared/config"
	"BaseWars/internal/shared/logs"
	"BaseWars/internal/shared/simconfig"
	"BaseWars/internal/sim"
)

type runFlags struct {
	config  string
	variant int
	seed    int64
	quiet   bool
	serve   bool
}

func newRunCmd() *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "跑一整局模拟并打印战报",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSim(cmd, f)
		},
	}
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "配置文件路径，默认向上查找 "+config.DefaultRelPath)
	cmd.Flags().IntVar(&f.variant, "variant", 0, "1: 只有农民出征；2: 建兵营并训练步兵")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "随机种子，0 表示随机")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "不在终端输出日志")
	cmd.Flags().BoolVar(&f.serve, "serve", false, "战斗结束后继续提供观战接口，直到收到退出信号")
	return cmd
}

func runSim(cmd *cobra.Command, f *runFlags) error {
	cfg, err := loadConfig(f.config)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("variant") {
		cfg.Sim.Variant = f.variant
	}
	if cmd.Flags().Changed("seed") {
		cfg.Sim.Seed = f.seed
	}
	if f.quiet {
		cfg.Log.Quiet = true
	}
	if f.serve {
		cfg.HTTP.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logs.Init("basewars", cfg.Log); err != nil {
		return err
	}
	defer logs.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner, err := sim.New(ctx, cfg, sim.WithLogger(logs.L()))
	if err != nil {
		return err
	}
	defer func() {
		if err := runner.Close(context.Background()); err != nil {
			logs.Warn("runner close", zap.Error(err))
		}
	}()

	printBanner(os.Stdout, cfg)
	sum, err := runner.Run(ctx)
	if sum != nil {
		printSummary(os.Stdout, sum)
	}
	if err != nil {
		color.Red("模拟未完成: %v", err)
		return err
	}

	if f.serve {
		color.Cyan("观战接口 %s 仍在服务，Ctrl+C 退出", cfg.HTTP.Addr)
		select {
		case <-ctx.Done():
		case err := <-runner.ServeErr():
			if err != nil {
				return fmt.Errorf("observe server: %w", err)
			}
		}
	}
	return nil
}

// loadConfig 找不到配置文件时使用内置默认值；文件变更时热更新日志级别。
func loadConfig(explicit string) (*simconfig.Config, error) {
	path := config.Find(explicit)
	return simconfig.Load(path, func(next *simconfig.Config) {
		logs.SetLevel(next.Log.Level)
		logs.Info("config reloaded", zap.String("level", next.Log.Level))
	})
}
