package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Govind-Kandale-1/3Tier-website/internal/config"
	"github.com/Govind-Kandale-1/3Tier-website/internal/logger"
	"github.com/Govind-Kandale-1/3Tier-website/internal/repository"
	"github.com/Govind-Kandale-1/3Tier-website/internal/seed"
	"github.com/Govind-Kandale-1/3Tier-website/internal/service"
	"github.com/Govind-Kandale-1/3Tier-website/internal/utils"
)

func main() {
	var op int
	var n int
	var file string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机员工, 2: 插入六名标准员工, 3: 从 CSV 文件导入员工)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.StringVar(&file, "file", "", "要导入的 CSV 文件路径")
	flag.Parse()

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法读取配置: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(cfg.Log.Level, cfg.Log.FilePath)
	ctx := log.WithContext(context.Background())

	// 连接数据库，种子数据不经过缓存
	cfg.Redis.Enabled = false
	repo, closeRepo, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("无法打开数据库")
		return
	}
	defer closeRepo()

	validator, err := utils.NewEmployeeValidator()
	if err != nil {
		log.Error().Err(err).Msg("无法创建校验器")
		return
	}
	svc := service.NewEmployeeService(repo, validator, nil)

	start := time.Now()

	// 执行操作
	switch op {
	case 0:
		log.Error().Msg("未指定操作")
	case 1:
		if n <= 0 {
			log.Error().Int("n", n).Msg("请输入合法的员工数量")
			return
		}
		inserted := seed.SeedRandom(ctx, svc, n, cfg.Seed.EmailDomain)
		log.Info().Int("count", inserted).Dur("duration", time.Since(start)).Msg("插入随机员工完成")
	case 2:
		inserted := seed.SeedStandard(ctx, svc)
		log.Info().Int("count", inserted).Dur("duration", time.Since(start)).Msg("插入标准员工完成")
	case 3:
		if file == "" {
			log.Error().Msg("请通过 -file 指定 CSV 文件")
			return
		}
		f, err := os.Open(file)
		if err != nil {
			log.Error().Err(err).Str("file", file).Msg("打开文件失败")
			return
		}
		defer f.Close()

		inserted, err := seed.SeedCSV(ctx, svc, f)
		if err != nil {
			log.Error().Err(err).Int("count", inserted).Msg("导入员工失败")
			return
		}
		log.Info().Int("count", inserted).Dur("duration", time.Since(start)).Msg("导入员工完成")
	default:
		log.Error().Int("op", op).Msg("未知的操作")
	}
}
