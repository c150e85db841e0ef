package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ikkim/camping-backend/config"
	"github.com/ikkim/camping-backend/internal/app/repository"
	"github.com/ikkim/camping-backend/internal/db"
	"github.com/ikkim/camping-backend/internal/report"
)

func main() {
	// 명령줄 인자 확인
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <members.xlsx>")
	}
	filePath := os.Args[1]

	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// DB 연결
	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// XLSX 파일 읽기
	fmt.Printf("Reading XLSX file: %s\n", filePath)
	file, err := os.Open(filePath)
	if err != nil {
		log.Fatal("Failed to open XLSX:", err)
	}
	defer file.Close()

	members, skipped, err := report.ReadMembers(file)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}
	fmt.Printf("Members to import: %d (skipped rows: %d)\n", len(members), skipped)

	// 사용자 확인
	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	memberRepo := repository.NewMemberRepository(db.GetDB())
	if err := memberRepo.BulkCreate(context.Background(), members, 500); err != nil {
		log.Fatal("Failed to bulk create members:", err)
	}

	fmt.Println("Import completed successfully!")
}
