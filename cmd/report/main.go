package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ikkim/camping-backend/config"
	"github.com/ikkim/camping-backend/internal/app/repository"
	"github.com/ikkim/camping-backend/internal/app/service"
	"github.com/ikkim/camping-backend/internal/db"
	"github.com/ikkim/camping-backend/internal/report"
)

func main() {
	out := flag.String("out", "", "output xlsx path (default ranking-YYYYMMDD.xlsx)")
	limit := flag.Int("limit", 20, "entries per sheet")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	conn := db.GetDB()
	memberRepo := repository.NewMemberRepository(conn)
	boardService := service.NewBoardService(
		repository.NewBoardRepository(conn),
		memberRepo,
		service.WithRankingWindow(cfg.Ranking.Window),
	)
	rankService := service.NewMemberRankService(memberRepo, time.Now, cfg.Ranking.Window)

	now := time.Now().UTC()
	weekly, err := report.BuildWeekly(context.Background(), boardService, rankService, now, cfg.Ranking.Window, *limit)
	if err != nil {
		log.Fatal("Failed to build ranking report:", err)
	}

	path := *out
	if path == "" {
		path = fmt.Sprintf("ranking-%s.xlsx", now.Format("20060102"))
	}
	file, err := os.Create(path)
	if err != nil {
		log.Fatal("Failed to create report file:", err)
	}
	defer file.Close()

	if err := weekly.Write(file); err != nil {
		log.Fatal("Failed to write report:", err)
	}
	fmt.Printf("Report written: %s (%d boards, %d members)\n", path, len(weekly.Boards), len(weekly.Members))
}
